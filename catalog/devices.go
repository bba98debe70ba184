package catalog

import "github.com/awox-mesh/awox-bridge/meshmodel"

// registerDefaultDevices loads the built-in AwoX/EGLO/KERIA product table.
// Product ids, names and models below are the mesh vendor's own
// identifiers, carried over from the firmware component's device
// resolver.
func registerDefaultDevices(r *StaticResolver) {
	color := func(productID, name, model, manufacturer string, icon ...string) {
		e := Entry{ProductID: productID, Name: name, Model: model, Manufacturer: manufacturer, Capabilities: meshmodel.LightColor()}
		if len(icon) > 0 {
			e.Icon = icon[0]
		}
		r.Register(e)
	}
	whiteTemp := func(productID, name, model, manufacturer string) {
		r.Register(Entry{ProductID: productID, Name: name, Model: model, Manufacturer: manufacturer, Capabilities: meshmodel.LightWhiteTemperature()})
	}
	white := func(productID, name, model, manufacturer string) {
		r.Register(Entry{ProductID: productID, Name: name, Model: model, Manufacturer: manufacturer, Capabilities: meshmodel.LightWhite()})
	}
	plug := func(productID, name, model, manufacturer, icon string) {
		r.Register(Entry{ProductID: productID, Name: name, Model: model, Manufacturer: manufacturer, Icon: icon, Capabilities: meshmodel.Plug()})
	}

	color("0013", "SmartLIGHT Color Mesh 9", "SMLm_C9", "AwoX")
	whiteTemp("0014", "SmartLIGHT White Mesh 13W", "SMLm_W13", "AwoX")
	color("0015", "SmartLIGHT Color Mesh 13W", "SMLm_C13", "AwoX")
	whiteTemp("0016", "SmartLIGHT White Mesh 15W", "SMLm_W15", "AwoX")
	color("0017", "SmartLIGHT Color Mesh 15W", "SMLm_C15", "AwoX")
	whiteTemp("0021", "SmartLIGHT White Mesh 9W", "SSMLm_w9", "AwoX")
	color("0022", "SmartLIGHT Color Mesh 9W", "SSMLm_c9", "AwoX")
	color("0023", "EGLOBulb A60 9W", "ESMLm_c9", "EGLO")
	color("0024", "Keria SmartLIGHT Color Mesh 9W", "KSMLm_c9", "KERIA")
	color("0025", "EGLOPanel 30X30", "EPanel_300", "EGLO")
	color("0026", "EGLOPanel 60X60", "EPanel_600", "EGLO")
	color("0027", "EGLO Ceiling DOWNLIGHT", "EMod_Ceil", "EGLO")
	color("0029", "EGLOBulb G95 13W", "ESMLm_c13g", "EGLO")
	color("002A", "Keria SmartLIGHT Color Mesh 13W Globe", "KSMLm_c13g", "KERIA")
	color("002B", "SmartLIGHT Color Mesh 13W Globe", "SMLm_c13g", "AwoX")
	color("0030", "EGLOPanel 30X120", "EPanel_120", "EGLO")
	color("0032", "Spot 120", "EGLOSpot 120/w", "EGLO", "mdi:wall-sconce-flat")
	color("0033", "Spot 170", "EGLOSpot 170/w", "EGLO", "mdi:wall-sconce-flat")
	color("0034", "Spot 225", "EGLOSpot 225/w", "EGLO", "mdi:wall-sconce-flat")
	color("0035", "Giron-C 17W", "EGLO 32589", "EGLO", "mdi:wall-sconce-flat")
	color("0036", "EGLO Ceiling GIRON 30", "ECeil_g38", "EGLO")
	color("0037", "SmartLIGHT Color Mesh 5W GU10", "SMLm_c5_GU10", "AwoX")
	color("0038", "SmartLIGHT Color Mesh 5W E14", "SMLm_c5_E14", "AwoX")
	color("003A", "Keria SmartLIGHT Color Mesh 5W GU10", "KSMLm_c5_GU10", "KERIA")
	color("003B", "Keria SmartLIGHT Color Mesh 5W E14", "KSMLm_c5_E14", "KERIA")
	color("003C", "SmartLIGHT Color Mesh 5W GU10", "ESMLm_c5_GU10", "EGLO")
	color("003D", "SmartLIGHT Color Mesh 5W E14", "ESMLm_c5_E14", "EGLO")
	color("003F", "EGLO Surface round", "EFueva_225r", "EGLO")
	color("0040", "EGLO Surface square", "EFueva_225s", "EGLO")
	white("0049", "EGLOBulb A60 Warm", "ESMLm_w9w", "EGLO")
	white("004A", "EGLOBulb A60 Neutral", "ESMLm_w9n", "EGLO")
	color("004B", "EGLO Ceiling", "ECeiling_30", "EGLO")
	color("004C", "EGLO Pendant", "EPendant_30", "EGLO")
	color("004E", "EGLO Stripled 3m", "EStrip_3m", "EGLO")
	white("0050", "Outdoor", "EOutdoor_w14w", "EGLO")
	color("0051", "EGLOSpot", "ETriSpot_85", "EGLO")
	whiteTemp("0064", "SmartLIGHT White Mesh 9W", "SMLm_w9", "AwoX")
	whiteTemp("0065", "SmartLIGHT White Mesh 9W", "ESMLm_w9", "EGLO")
	color("0069", "Ceiling GIRON 60", "ECeil_g60", "EGLO")
	whiteTemp("006A", "SmartLIGHT Bulb A60 Warm", "SMLm_w9w", "AwoX")
	whiteTemp("006F", "EGLOBulb Filament G80", "ESMLFm-w6-G80", "EGLO")
	whiteTemp("0071", "EGLOBulb Filament ST64", "ESMLFm-w6-ST64", "EGLO")
	whiteTemp("0075", "EGLOBulb Filament G95", "ESMLFm-w6-G95", "EGLO")
	color("0077", "EGLO Spot", "ESpot_c5", "EGLO")
	color("0078", "EGLO Fraioli", "EFraioli_c17", "EGLO")
	color("0096", "EGLO RGB+TW", "EGLO-RGB-TW", "EGLO")
	whiteTemp("0097", "EGLO Tunable White", "EGLO-TW", "EGLO")
	whiteTemp("0087", "EGLO Tunable White", "EDoubleWhite", "EGLO")
	color("00A1", "EGLOLed Relax", "ELedRelax", "EGLO")
	color("00A2", "EGLOLed Stripe", "ELedStripe", "EGLO")
	color("00A3", "EGLOLed Plus", "ELedPlus", "EGLO")
	whiteTemp("00A4", "EGLOLed Plus TW", "ELedPlus-TW", "EGLO")
	white("00A5", "EGLOLed Plus Dimmable", "ELedPlus-Dimm", "EGLO")

	plug("009E", "EGLO PLUG PLUS", "SMPWBm10AUSb", "EGLO", "mdi:power-socket-au")
	plug("0090", "EGLO PLUG PLUS", "SMPWBm10CH", "EGLO", "mdi:power-socket-ch")
	plug("00A0", "EGLO PLUG PLUS", "SMPWBm10CHb", "EGLO", "mdi:power-socket-ch")
	plug("0067", "EGLO PLUG PLUS", "SMPWBm10FR", "EGLO", "mdi:power-socket-fr")
	plug("0068", "EGLO PLUG PLUS", "SMPWBm10GE", "EGLO", "mdi:power-socket-de")
	plug("008F", "EGLO PLUG PLUS", "SMPWBm10UK", "EGLO", "mdi:power-socket-uk")
	plug("008B", "EGLO PLUG", "ESMP-Bm10-AUS", "EGLO", "mdi:power-socket-au")
	plug("008D", "EGLO PLUG", "ESMP-Bm10-CH", "EGLO", "mdi:power-socket-ch")
	plug("0062", "EGLO PLUG", "ESMP-Bm10-FR", "EGLO", "mdi:power-socket-fr")
	plug("0063", "EGLO PLUG", "ESMP-Bm10-GE", "EGLO", "mdi:power-socket-de")
	plug("008C", "EGLO PLUG", "ESMP-Bm10-UK", "EGLO", "mdi:power-socket-uk")
}
