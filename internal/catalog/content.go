package catalog

const (
	defaultWiFiSSID     = "Uland_Resort"
	defaultWiFiPassword = "uland2024"
	defaultPhone        = "08x-xxx-xxxx"
	defaultCoffeePhone  = "094-7802363"
	defaultMapURL       = "https://maps.google.com/?q=Uland+Resort"
)

func (o Options) withDefaults() Options {
	if o.WiFiSSID == "" {
		o.WiFiSSID = defaultWiFiSSID
	}
	if o.WiFiPassword == "" {
		o.WiFiPassword = defaultWiFiPassword
	}
	if o.Phone == "" {
		o.Phone = defaultPhone
	}
	if o.CoffeePhone == "" {
		o.CoffeePhone = defaultCoffeePhone
	}
	if o.MapURL == "" {
		o.MapURL = defaultMapURL
	}
	return o
}

// Images the content refers to. They are not in the repository; deployments
// put them in STATIC_DIR/images:
//
//	room_sj.jpg, room_ts.jpg, room_ks.jpg   room cards and room details
//	coffee.jpg                              Uland Coffee shop photo
//	menu_drinks.jpg, menu_bakery.jpg        coffee menu pages
func (c *Catalog) buildRooms() []RoomOffering {
	return []RoomOffering{
		{
			Title:         `ห้องพักโซน "สุขใจ"`,
			PricePerNight: "490 บาท / คืน",
			HeroImageURL:  c.AssetURL("room_sj.jpg"),
			DetailIntent:  RoomDetailSJ,
			BookIntent:    BookRoom,
		},
		{
			Title:         `ห้องพักโซน "เติมสุข"`,
			PricePerNight: "590 บาท / คืน",
			HeroImageURL:  c.AssetURL("room_ts.jpg"),
			DetailIntent:  RoomDetailTS,
			BookIntent:    BookRoom,
		},
		{
			Title:         `ห้องพักโซน "กาสะลอง"`,
			PricePerNight: "890 บาท / คืน",
			HeroImageURL:  c.AssetURL("room_ks.jpg"),
			DetailIntent:  RoomDetailKS,
			BookIntent:    BookRoom,
		},
	}
}

func (c *Catalog) buildTemplates(o Options) map[Intent]Template {
	roomCard := Template{Reply: []Message{Card{
		Alt:         "ประเภทห้องพัก",
		Rooms:       c.rooms,
		DetailLabel: "ข้อมูลเพิ่มเติม",
		BookLabel:   "จองห้องพัก",
	}}}

	detailTS := Template{Reply: []Message{Text{Body: "🛎 รายละเอียดห้องพักโซน \"เติมสุข\"\n" +
		"• แอร์\n• เครื่องทำน้ำอุ่น\n• Wi-Fi\n• ทีวี\n• ตู้เย็น\n• ที่จอดรถ"}}}

	return map[Intent]Template{
		MainMenu: {Reply: []Message{Text{Body: "สวัสดีค่ะ ยินดีต้อนรับสู่ Uland Resort 🌿\n" +
			"พิมพ์หมายเลขเพื่อเลือกเมนูได้เลยค่ะ\n\n" +
			"1. ประเภทและราคาห้องพัก\n" +
			"2. แผนที่รีสอร์ท\n" +
			"3. ULand Coffee\n" +
			"4. Wi-Fi\n" +
			"5. ติดต่อสอบถาม\n" +
			"6. จองห้องพัก"}}},

		RoomPrice: roomCard,
		Rooms:     roomCard,

		RoomDetailSJ: {Reply: []Message{
			Text{Body: "🛎 รายละเอียดห้องพักโซน \"สุขใจ\"\n" +
				"• พัดลม\n• เครื่องทำน้ำอุ่น\n• Wi-Fi\n• ที่จอดรถ"},
			Image{FullURL: c.AssetURL("room_sj.jpg"), PreviewURL: c.AssetURL("room_sj.jpg")},
		}},
		RoomDetailTS: detailTS,
		RoomDetail:   detailTS,
		RoomDetailKS: {Reply: []Message{
			Text{Body: "🛎 รายละเอียดห้องพักโซน \"กาสะลอง\"\n" +
				"• แอร์\n• เครื่องทำน้ำอุ่น\n• Wi-Fi\n• สมาร์ททีวี\n• ตู้เย็น\n• ระเบียงส่วนตัว\n• ที่จอดรถ"},
			Image{FullURL: c.AssetURL("room_ks.jpg"), PreviewURL: c.AssetURL("room_ks.jpg")},
		}},

		BookRoom: {Reply: []Message{Text{Body: "📅 ต้องการจองห้องพัก\nพิมพ์:\nจอง + วันที่เข้าพัก + จำนวนคืน\n\n" +
			"หรือโทร " + o.Phone}}},

		Location: {Reply: []Message{Text{Body: "📍 แผนที่ Uland Resort\n" + o.MapURL}}},

		Coffee: {
			Reply: []Message{
				Text{Body: "☕ ULand Coffee \nพร้อมเสิร์ฟความอร่อยทุกวัน 💛 \nเปิดให้บริการเวลา 07.00 - 17.00 น. \n\n" +
					"สั่ง กาแฟ น้ำ ขนม ได้ที่นี่เลยค่ะหรือโทร 📞 " + o.CoffeePhone},
				Image{FullURL: c.AssetURL("coffee.jpg"), PreviewURL: c.AssetURL("coffee.jpg")},
			},
			Deferred: []Message{
				Image{FullURL: c.AssetURL("menu_drinks.jpg"), PreviewURL: c.AssetURL("menu_drinks.jpg")},
				Image{FullURL: c.AssetURL("menu_bakery.jpg"), PreviewURL: c.AssetURL("menu_bakery.jpg")},
			},
		},

		WiFi: {Reply: []Message{Text{Body: "📶 Wi-Fi\nชื่อเครือข่าย: " + o.WiFiSSID + "\nรหัสผ่าน: " + o.WiFiPassword}}},

		Contact: {
			Reply: []Message{Text{Body: "สวัสดีค่ะคุณ " + DisplayNamePlaceholder + " 😊\n\n" +
				"📞 ติดต่อสอบถาม\n" +
				"โทร: " + o.Phone + "\n\n" +
				"⏰ เช็กอิน: 14:00\n" +
				"⏰ เช็กเอาต์: 12:00\n\n" +
				"พิมพ์คำถามได้เลยค่ะ"}},
			Personalized: true,
		},
	}
}
