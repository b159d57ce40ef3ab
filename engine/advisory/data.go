package advisory

// builtin returns the records compiled into the service.
func builtin() []Record {
	return append(curated(), modelClasses()...)
}

// curated records are fully translated.
func curated() []Record {
	return []Record{
		{
			ID: "leaf-rust",
			Name: LocalizedText{
				English: "Leaf Rust",
				Hindi:   "पत्ती जंग",
				Marathi: "पान गंज",
			},
			Cause: LocalizedText{
				English: "Fungal infection caused by Puccinia species, thrives in high humidity and moderate temperatures.",
				Hindi:   "पुक्किनिया प्रजातियों के कारण होने वाला कवक संक्रमण, उच्च आर्द्रता और मध्यम तापमान में पनपता है।",
				Marathi: "पुक्किनिया प्रजातींमुळे होणारा बुरशीजन्य संसर्ग, उच्च आर्द्रता आणि मध्यम तापमानात वाढतो।",
			},
			Treatment: LocalizedList{
				English: {
					"Remove and destroy infected leaves immediately",
					"Apply fungicide containing azoxystrobin or propiconazole",
					"Spray early morning or late evening for best results",
					"Repeat application every 10-14 days if infection persists",
				},
				Hindi: {
					"संक्रमित पत्तियों को तुरंत हटाएं और नष्ट करें",
					"एज़ोक्सीस्ट्रोबिन या प्रोपिकोनाज़ोल युक्त कवकनाशी लगाएं",
					"सर्वोत्तम परिणामों के लिए सुबह जल्दी या देर शाम छिड़काव करें",
					"यदि संक्रमण बना रहता है तो हर 10-14 दिनों में दोबारा लगाएं",
				},
				Marathi: {
					"संक्रमित पाने ताबडतोब काढून टाका आणि नष्ट करा",
					"अॅझॉक्सीस्ट्रोबिन किंवा प्रोपिकोनाझोल असलेले बुरशीनाशक लावा",
					"सर्वोत्तम परिणामांसाठी लवकर सकाळी किंवा संध्याकाळी फवारणी करा",
					"संसर्ग कायम राहिल्यास दर 10-14 दिवसांनी पुन्हा लावा",
				},
			},
			Prevention: LocalizedList{
				English: {
					"Improve air circulation between plants",
					"Avoid overhead irrigation during humid conditions",
					"Monitor crops regularly for early detection",
					"Use resistant crop varieties when available",
					"Maintain proper plant spacing",
				},
				Hindi: {
					"पौधों के बीच हवा के संचलन में सुधार करें",
					"नम परिस्थितियों में ऊपरी सिंचाई से बचें",
					"शीघ्र पता लगाने के लिए नियमित रूप से फसलों की निगरानी करें",
					"उपलब्ध होने पर प्रतिरोधी फसल किस्मों का उपयोग करें",
					"उचित पौधों की दूरी बनाए रखें",
				},
				Marathi: {
					"रोपांमधील हवा परिसंचरण सुधारा",
					"आर्द्र परिस्थितीत वरून पाणी देणे टाळा",
					"लवकर शोधासाठी नियमितपणे पिकांचे निरीक्षण करा",
					"उपलब्ध असल्यास प्रतिरोधक पीक जाती वापरा",
					"योग्य रोप अंतर राखा",
				},
			},
			Fertilizer: LocalizedText{
				English: "Apply balanced NPK (10-10-10) to strengthen plant immunity. Add potassium-rich fertilizer to improve disease resistance.",
				Hindi:   "पौधे की प्रतिरक्षा को मजबूत करने के लिए संतुलित NPK (10-10-10) लगाएं। रोग प्रतिरोधक क्षमता बढ़ाने के लिए पोटेशियम युक्त उर्वरक डालें।",
				Marathi: "वनस्पती प्रतिकारशक्ती मजबूत करण्यासाठी संतुलित NPK (10-10-10) लावा. रोग प्रतिकारशक्ती सुधारण्यासाठी पोटॅशियम समृद्ध खत घाला.",
			},
			Irrigation: LocalizedText{
				English: "Reduce irrigation frequency. Water at soil level, avoid wetting leaves. Best time: early morning (6-8 AM).",
				Hindi:   "सिंचाई की आवृत्ति कम करें। मिट्टी के स्तर पर पानी दें, पत्तियों को गीला करने से बचें। सर्वोत्तम समय: सुबह जल्दी (6-8 AM)।",
				Marathi: "सिंचन वारंवारता कमी करा. मातीच्या पातळीवर पाणी द्या, पाने ओली करणे टाळा. सर्वोत्तम वेळ: लवकर सकाळी (6-8 AM).",
			},
		},
		{
			ID: "blast-disease",
			Name: LocalizedText{
				English: "Blast Disease",
				Hindi:   "ब्लास्ट रोग",
				Marathi: "ब्लास्ट रोग",
			},
			Cause: LocalizedText{
				English: "Caused by Magnaporthe oryzae fungus, spreads rapidly in wet conditions with high nitrogen levels.",
				Hindi:   "मैग्नापोर्थे ओराइज़े कवक के कारण होता है, उच्च नाइट्रोजन स्तर के साथ गीली परिस्थितियों में तेजी से फैलता है।",
				Marathi: "मॅग्नापोर्थे ओरायझे बुरशीमुळे होतो, उच्च नायट्रोजन पातळीसह ओल्या परिस्थितीत वेगाने पसरतो.",
			},
			Treatment: LocalizedList{
				English: {
					"Apply tricyclazole or carbendazim fungicide immediately",
					"Remove severely infected plants to prevent spread",
					"Increase potassium fertilization to strengthen plants",
					"Ensure proper drainage in fields",
				},
				Hindi: {
					"तुरंत ट्राइसाइक्लाज़ोल या कार्बेन्डाज़िम कवकनाशी लगाएं",
					"प्रसार को रोकने के लिए गंभीर रूप से संक्रमित पौधों को हटा दें",
					"पौधों को मजबूत करने के लिए पोटेशियम उर्वरक बढ़ाएं",
					"खेतों में उचित जल निकासी सुनिश्चित करें",
				},
				Marathi: {
					"ताबडतोब ट्रायसायक्लाझोल किंवा कार्बेंडाझिम बुरशीनाशक लावा",
					"प्रसार रोखण्यासाठी गंभीरपणे संक्रमित रोपे काढून टाका",
					"रोपे मजबूत करण्यासाठी पोटॅशियम खत वाढवा",
					"शेतात योग्य निचरा सुनिश्चित करा",
				},
			},
			Prevention: LocalizedList{
				English: {
					"Use certified disease-free seeds",
					"Avoid excessive nitrogen fertilization",
					"Maintain balanced nutrient levels",
					"Practice crop rotation",
					"Remove crop residues after harvest",
				},
				Hindi: {
					"प्रमाणित रोग मुक्त बीजों का उपयोग करें",
					"अत्यधिक नाइट्रोजन उर्वरक से बचें",
					"संतुलित पोषक स्तर बनाए रखें",
					"फसल चक्र का अभ्यास करें",
					"कटाई के बाद फसल अवशेष हटा दें",
				},
				Marathi: {
					"प्रमाणित रोगमुक्त बियाणे वापरा",
					"जास्त नायट्रोजन खत टाळा",
					"संतुलित पोषक पातळी राखा",
					"पीक आलटून पालट करा",
					"कापणीनंतर पीक अवशेष काढून टाका",
				},
			},
			Fertilizer: LocalizedText{
				English: "Reduce nitrogen, increase potassium (NPK 15-5-25). Apply silicon-based fertilizer to strengthen cell walls.",
				Hindi:   "नाइट्रोजन कम करें, पोटेशियम बढ़ाएं (NPK 15-5-25)। कोशिका दीवारों को मजबूत करने के लिए सिलिकॉन आधारित उर्वरक लगाएं।",
				Marathi: "नायट्रोजन कमी करा, पोटॅशियम वाढवा (NPK 15-5-25). पेशी भिंती मजबूत करण्यासाठी सिलिकॉन-आधारित खत लावा.",
			},
			Irrigation: LocalizedText{
				English: "Avoid continuous flooding. Use intermittent irrigation. Drain fields periodically to reduce humidity.",
				Hindi:   "निरंतर बाढ़ से बचें। आंतरायिक सिंचाई का उपयोग करें। आर्द्रता कम करने के लिए समय-समय पर खेतों को सूखा दें।",
				Marathi: "सतत पूर टाळा. मधूनमधून सिंचन वापरा. आर्द्रता कमी करण्यासाठी वेळोवेळी शेते निचरा करा.",
			},
		},
		{
			ID: "aphid-infestation",
			Name: LocalizedText{
				English: "Aphid Infestation",
				Hindi:   "एफिड संक्रमण",
				Marathi: "एफिड प्रादुर्भाव",
			},
			Cause: LocalizedText{
				English: "Small sap-sucking insects that multiply rapidly in warm, dry conditions. Spread viral diseases.",
				Hindi:   "छोटे रस चूसने वाले कीड़े जो गर्म, शुष्क परिस्थितियों में तेजी से बढ़ते हैं। वायरल रोग फैलाते हैं।",
				Marathi: "लहान रस शोषक कीटक जे उबदार, कोरड्या परिस्थितीत वेगाने वाढतात. विषाणूजन्य रोग पसरवतात.",
			},
			Treatment: LocalizedList{
				English: {
					"Spray neem oil solution (5ml per liter) every 5-7 days",
					"Use insecticidal soap for immediate control",
					"Apply imidacloprid for severe infestations",
					"Introduce natural predators like ladybugs",
				},
				Hindi: {
					"हर 5-7 दिनों में नीम तेल का घोल (5ml प्रति लीटर) छिड़कें",
					"तत्काल नियंत्रण के लिए कीटनाशक साबुन का उपयोग करें",
					"गंभीर संक्रमण के लिए इमिडाक्लोप्रिड लगाएं",
					"लेडीबग जैसे प्राकृतिक शिकारियों को पेश करें",
				},
				Marathi: {
					"दर 5-7 दिवसांनी कडुलिंबाच्या तेलाचे द्रावण (5ml प्रति लिटर) फवारा",
					"त्वरित नियंत्रणासाठी कीटकनाशक साबण वापरा",
					"गंभीर प्रादुर्भावासाठी इमिडाक्लोप्रिड लावा",
					"लेडीबग सारखे नैसर्गिक भक्षक आणा",
				},
			},
			Prevention: LocalizedList{
				English: {
					"Plant companion crops like marigold to repel aphids",
					"Use reflective mulch to confuse pests",
					"Monitor crops weekly for early detection",
					"Maintain plant health with proper nutrition",
					"Remove weeds that harbor aphids",
				},
				Hindi: {
					"एफिड को दूर भगाने के लिए गेंदे जैसी सहयोगी फसलें लगाएं",
					"कीटों को भ्रमित करने के लिए परावर्तक मल्च का उपयोग करें",
					"शीघ्र पता लगाने के लिए साप्ताहिक फसलों की निगरानी करें",
					"उचित पोषण के साथ पौधों का स्वास्थ्य बनाए रखें",
					"एफिड को आश्रय देने वाले खरपतवार हटा दें",
				},
				Marathi: {
					"एफिड दूर ठेवण्यासाठी झेंडू सारख्या सहचर पिके लावा",
					"कीटकांना गोंधळात टाकण्यासाठी परावर्तक आच्छादन वापरा",
					"लवकर शोधासाठी साप्ताहिक पिकांचे निरीक्षण करा",
					"योग्य पोषणासह वनस्पती आरोग्य राखा",
					"एफिडला आश्रय देणारे तण काढून टाका",
				},
			},
			Fertilizer: LocalizedText{
				English: "Avoid excess nitrogen which promotes soft growth attractive to aphids. Use balanced NPK (10-10-10).",
				Hindi:   "अतिरिक्त नाइट्रोजन से बचें जो एफिड के लिए आकर्षक कोमल वृद्धि को बढ़ावा देता है। संतुलित NPK (10-10-10) का उपयोग करें।",
				Marathi: "जास्त नायट्रोजन टाळा जे एफिडसाठी आकर्षक मऊ वाढ वाढवते. संतुलित NPK (10-10-10) वापरा.",
			},
			Irrigation: LocalizedText{
				English: "Use overhead sprinklers to wash off aphids. Water stress attracts aphids, maintain consistent moisture.",
				Hindi:   "एफिड को धोने के लिए ऊपरी छिड़काव का उपयोग करें। पानी का तनाव एफिड को आकर्षित करता है, लगातार नमी बनाए रखें।",
				Marathi: "एफिड धुण्यासाठी वरून फवारे वापरा. पाण्याचा ताण एफिडला आकर्षित करतो, सातत्यपूर्ण आर्द्रता राखा.",
			},
		},
	}
}

// english builds an English-only record. Other languages reach it through
// the English fallback in Project.
func english(id, name, cause string, treatment, prevention []string, fertilizer string) Record {
	return Record{
		ID:         id,
		Name:       LocalizedText{English: name},
		Cause:      LocalizedText{English: cause},
		Treatment:  LocalizedList{English: treatment},
		Prevention: LocalizedList{English: prevention},
		Fertilizer: LocalizedText{English: fertilizer},
	}
}

// modelClasses covers every label the deployed image model can emit.
func modelClasses() []Record {
	const (
		healthyCause = "No disease detected. Plant appears healthy."
		noTreatment  = "No treatment required"
	)
	return []Record{
		english("corn-common-rust", "Corn Common Rust",
			"Caused by the fungus Puccinia sorghi, spread by windborne spores in cool, moist conditions.",
			[]string{"Apply fungicides (azoxystrobin, propiconazole) at first sign of pustules", "Spray every 10-14 days"},
			[]string{"Plant resistant hybrids", "Scout fields regularly from early season"},
			"Ensure adequate Potassium and balanced NPK to strengthen plant immunity."),
		english("corn-gray-leaf-spot", "Corn Gray Leaf Spot",
			"Caused by Cercospora zeae-maydis fungus; thrives in warm, humid, and cloudy conditions.",
			[]string{"Apply foliar fungicides (strobilurin or triazole) when disease appears on lower leaves"},
			[]string{"Crop rotation with non-host crops", "Manage crop residue by tillage"},
			"Optimize Potassium levels to help plant manage drought and disease stress."),
		english("corn-healthy", "Corn Healthy", healthyCause,
			[]string{noTreatment, "Continue regular monitoring"},
			[]string{"Maintain consistent irrigation and pest scouting to keep crop healthy"},
			"Apply Nitrogen in split applications for sustained growth."),
		english("corn-northern-leaf-blight", "Corn Northern Leaf Blight",
			"Caused by Exserohilum turcicum fungus. Favored by moderate temperatures and leaf wetness.",
			[]string{"Apply fungicides if disease appears early on upper leaves", "Foliar sprays help reduce spread"},
			[]string{"Crop rotation and tillage to bury infected residue", "Use resistant hybrids"},
			"Balanced nutrition program improves overall plant health and resistance."),
		english("jowar-healthy", "Jowar Healthy", healthyCause,
			[]string{noTreatment, "Continue regular monitoring"},
			[]string{"Practice good field sanitation and proper spacing to maintain airflow"},
			"Apply NPK based on soil test. Phosphorus promotes strong root development."),
		english("jowar-rust", "Jowar Rust",
			"Caused by Puccinia purpurea fungus; spreads rapidly via wind in warm, humid weather.",
			[]string{"Apply contact or systemic fungicides (mancozeb, propiconazole) at early infection stage"},
			[]string{"Use rust-resistant varieties", "Remove infected plant debris after harvest"},
			"Ensure adequate Potassium to boost natural disease resistance."),
		english("mango-anthracnose", "Mango Anthracnose",
			"Caused by Colletotrichum gloeosporioides; infects during wet and humid conditions.",
			[]string{"Spray copper-based fungicides or carbendazim", "Apply pre- and post-harvest treatment"},
			[]string{"Prune for better airflow", "Avoid overhead irrigation", "Collect and destroy fallen fruits"},
			"Balanced fertilization with adequate Calcium strengthens fruit cell walls."),
		english("mango-healthy", "Mango Healthy", healthyCause,
			[]string{noTreatment, "Continue regular orchard management"},
			[]string{"Regular pruning for light penetration and airflow", "Monitor for pests"},
			"Apply balanced NPK fertilizer in spring before flowering."),
		english("mango-powdery-mildew", "Mango Powdery Mildew",
			"Caused by Oidium mangiferae; favors dry weather with cool nights and warm days.",
			[]string{"Apply sulfur dust or systemic fungicides (triadimefon, hexaconazole) on affected parts"},
			[]string{"Avoid planting in areas with poor air circulation", "Prune congested branches"},
			"Avoid over-fertilizing with Nitrogen, which creates lush susceptible tissue."),
		english("potato-early-blight", "Potato Early Blight",
			"Caused by Alternaria solani; older leaves infected first during warm, wet periods.",
			[]string{"Apply fungicides containing chlorothalonil or mancozeb", "Rotate with legumes or grains"},
			[]string{"Manage irrigation to keep foliage dry", "Destroy volunteer potato plants"},
			"Increase Potassium and Phosphorus if soil test indicates deficiency."),
		english("potato-healthy", "Potato Healthy", healthyCause,
			[]string{noTreatment, "Continue regular monitoring"},
			[]string{"Practice 3-year crop rotation", "Use certified seed potatoes"},
			"Sufficient Nitrogen early in growth; moderate Potassium throughout season."),
		english("potato-late-blight", "Potato Late Blight",
			"Caused by Phytophthora infestans (oomycete); spreads rapidly in cool, wet conditions. Highly destructive.",
			[]string{"URGENT: Use systemic fungicides (metalaxyl, cymoxanil)", "Destroy infected plants immediately"},
			[]string{"Use certified seed tubers", "Avoid cull piles", "Apply preventive fungicide sprays"},
			"Avoid over-fertilizing with Nitrogen late in the season."),
		english("rice-brown-spot", "Rice Brown Spot",
			"Caused by Helminthosporium oryzae; associated with poor soil nutrition and drought stress.",
			[]string{"Apply fungicides (tricyclazole, propiconazole)", "Ensure proper water management"},
			[]string{"Use disease-free seeds", "Treat seeds with fungicide before planting"},
			"Apply balanced fertilizer. Potassium and Silicon nutrition reduce susceptibility."),
		english("rice-healthy", "Rice Healthy", healthyCause,
			[]string{noTreatment, "Continue regular field monitoring"},
			[]string{"Maintain proper water levels and field sanitation throughout the season"},
			"Split Nitrogen applications to support tillering and grain filling."),
		english("rice-leaf-blast", "Rice Leaf Blast",
			"Caused by Magnaporthe oryzae; favored by high humidity, heavy dew, and warm nights.",
			[]string{"Apply tricyclazole or isoprothiolane fungicide immediately at first signs"},
			[]string{"Use resistant varieties", "Avoid excessive Nitrogen", "Ensure proper plant spacing"},
			"Reduce Nitrogen application; excess Nitrogen increases blast susceptibility."),
		english("rice-neck-blast", "Rice Neck Blast",
			"Caused by Magnaporthe oryzae attacking the neck node; occurs at panicle emergence stage.",
			[]string{"Apply tricyclazole at panicle initiation and heading stage for protection"},
			[]string{"Time planting to avoid panicle emergence during high-risk periods", "Use resistant varieties"},
			"Balanced NPK; avoid late high-Nitrogen applications which increase severity."),
		english("sugarcane-bacterial-blight", "Sugarcane Bacterial Blight",
			"Caused by Xanthomonas albilineans; spreads through infected cuttings and contaminated tools.",
			[]string{"No chemical cure", "Rogue out infected stools", "Use disease-free planting material"},
			[]string{"Use certified disease-free seed setts", "Disinfect cutting tools with bleach solution"},
			"Balanced NPK to maintain vigorous growth. Avoid stress conditions."),
		english("sugarcane-healthy", "Sugarcane Healthy", healthyCause,
			[]string{noTreatment, "Continue regular monitoring"},
			[]string{"Practice proper field sanitation and use disease-free planting material"},
			"Apply Nitrogen in split doses. Ensure adequate Phosphorus and Potassium."),
		english("sugarcane-red-rot", "Sugarcane Red Rot",
			"Caused by Colletotrichum falcatum; enters through wounds; spreads in waterlogged soils.",
			[]string{"Remove and destroy affected stools", "Treat setts with carbendazim solution before planting"},
			[]string{"Use resistant varieties", "Ensure good field drainage", "Avoid waterlogging"},
			"Maintain soil health with organic matter. Avoid excessive Nitrogen."),
		english("wheat-brown-rust", "Wheat Brown Rust",
			"Caused by Puccinia triticina; wind-dispersed spores; favors mild temperatures and moisture.",
			[]string{"Apply triazole or strobilurin fungicide at flag leaf stage for best results"},
			[]string{"Grow resistant varieties", "Avoid late sowing to reduce disease risk window"},
			"Balanced Nitrogen application; avoid over-application which increases susceptibility."),
		english("wheat-healthy", "Wheat Healthy", healthyCause,
			[]string{noTreatment, "Continue regular field monitoring"},
			[]string{"Use certified seeds, proper crop rotation, and balanced nutrition"},
			"Apply Nitrogen in 2-3 splits. Ensure adequate Phosphorus at sowing."),
		english("wheat-yellow-rust", "Wheat Yellow Rust",
			"Caused by Puccinia striiformis; favors cool, moist conditions. Highly contagious via wind.",
			[]string{"Apply propiconazole or tebuconazole fungicide immediately at first sign of yellowing stripes"},
			[]string{"Grow resistant varieties", "Avoid late sowing", "Monitor fields from tillering stage"},
			"Ensure adequate Potassium. Avoid excess Nitrogen in the growing season."),
	}
}
