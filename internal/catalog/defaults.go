package catalog

import "github.com/veldworks/veldbooks/internal/model"

// defaultCategories returns the built-in allocation categories with their
// keyword phrases. Keywords are lower case and matched as substrings of the
// raw description; longer phrases rank higher than short generic ones.
func defaultCategories() []model.Category {
	return []model.Category{
		{
			Code:  "FUEL",
			Label: "Fuel & Oil",
			Keywords: []string{
				"engen", "shell", "sasol", "caltex", "total", "astron energy",
				"petroport", "fuel", "petrol", "diesel", "filling station",
				"bp express", "garage forecourt", "unleaded", "paraffin",
				"viva fuels", "puma energy", "oil change", "lubricants",
				"fuel card", "fuel purchase", "engine oil",
			},
		},
		{
			Code:  "ELECTRICITY",
			Label: "Electricity",
			Keywords: []string{
				"eskom", "prepaid electricity", "prepaid meter", "city power",
				"municipal electricity", "electricity purchase", "kwh token",
				"electricity token", "electricity account", "power purchase",
				"solar lease",
			},
		},
		{
			Code:  "WATER",
			Label: "Water & Sanitation",
			Keywords: []string{
				"joburg water", "rand water", "water and sanitation",
				"water account", "municipal water", "sanitation charge",
				"borehole service", "water tanker", "water bill", "irrigation",
			},
		},
		{
			Code:  "RATES_TAXES",
			Label: "Municipal Rates & Taxes",
			Keywords: []string{
				"city of cape town", "city of johannesburg", "city of tshwane",
				"ethekwini", "municipality", "property rates", "municipal rates",
				"refuse removal", "city of ekurhuleni", "nelson mandela bay",
				"rates and taxes", "municipal account", "mangaung",
			},
		},
		{
			Code:  "TELEPHONE",
			Label: "Telephone & Cellular",
			Keywords: []string{
				"vodacom", "mtn", "cell c", "telkom mobile", "airtime",
				"prepaid airtime", "cellular contract", "telephone account",
				"rain mobile", "virgin mobile", "data bundle", "sim card",
				"landline", "voip", "telephone line",
			},
		},
		{
			Code:  "INTERNET",
			Label: "Internet & Hosting",
			Keywords: []string{
				"afrihost", "webafrica", "axxess", "cool ideas", "openserve",
				"fibre", "adsl", "web hosting", "domain renewal",
				"internet service", "vox telecom", "rsaweb", "herotel", "mweb",
				"vumatel", "lte package", "static ip", "email hosting",
			},
		},
		{
			Code:  "RENT",
			Label: "Rent Paid",
			Keywords: []string{
				"rent paid", "rental", "office rent", "lease payment",
				"property rental", "letting agent", "premises rent",
				"warehouse rent", "storage unit", "parking bay", "rent deposit",
				"body corporate levy",
			},
		},
		{
			Code:  "SALARIES",
			Label: "Salaries & Wages",
			Keywords: []string{
				"salary", "salaries", "wages", "payroll", "staff payment",
				"remuneration", "overtime payout", "casual labour",
				"weekly wages", "commission payout", "bonus payment",
				"net salary", "staff wages",
			},
		},
		{
			Code:  "PAYE_UIF",
			Label: "PAYE, UIF & SDL",
			Keywords: []string{
				"paye", "uif", "sdl", "emp201", "sars paye",
				"skills development levy", "unemployment insurance", "emp501",
			},
		},
		{
			Code:  "TAXES_SARS",
			Label: "SARS Taxes",
			Keywords: []string{
				"sars", "income tax", "provisional tax", "efiling", "vat201",
				"tax payment", "dividends tax", "turnover tax",
				"assessed tax", "tax period", "tax clearance",
			},
		},
		{
			// Populated only through VAT splitting in the ledger, never by
			// keyword matching.
			Code:     "VAT_INPUT",
			Label:    "VAT Input",
			Keywords: []string{},
		},
		{
			Code:  "BANK_CHARGES",
			Label: "Bank Charges",
			Keywords: []string{
				"bank charges", "monthly account fee", "service fee",
				"cash deposit fee", "card fee", "transaction fee",
				"facility fee", "cheque book", "admin fee", "atm fee",
				"immediate payment fee", "eft fee", "statement fee",
				"dishonour fee", "notification fee", "overdraft fee",
			},
		},
		{
			Code:  "INTEREST_PAID",
			Label: "Interest Paid",
			Keywords: []string{
				"interest charged", "finance charges", "overdraft interest",
				"loan interest", "debit interest", "arrears interest",
				"interest debit",
			},
		},
		{
			Code:  "INTEREST_RECEIVED",
			Label: "Interest Received",
			Keywords: []string{
				"interest received", "credit interest", "interest capitalised",
				"interest on savings", "notice deposit interest",
			},
		},
		{
			Code:  "INSURANCE",
			Label: "Insurance",
			Keywords: []string{
				"santam", "outsurance", "discovery insure", "hollard",
				"auto general", "king price", "miway", "old mutual insure",
				"insurance premium", "short term insurance", "budget insurance",
				"momentum insure", "sasria", "business insurance",
				"liability cover", "fleet insurance",
			},
		},
		{
			Code:  "MEDICAL",
			Label: "Medical Expenses",
			Keywords: []string{
				"discovery health", "bonitas", "medihelp", "netcare",
				"mediclinic", "dis-chem", "clicks pharmacy", "pathcare",
				"lancet", "pharmacy", "medical aid", "momentum health",
				"life healthcare", "ampath", "gap cover", "clinic",
				"optometrist",
			},
		},
		{
			Code:  "ADVERTISING",
			Label: "Advertising & Marketing",
			Keywords: []string{
				"google ads", "facebook ads", "meta platforms", "advertising",
				"marketing", "gumtree", "junk mail", "signage", "promo material",
				"linkedin ads", "billboards", "flyers", "branding",
				"google adwords", "seo services", "sponsored post",
			},
		},
		{
			Code:  "STATIONERY",
			Label: "Printing & Stationery",
			Keywords: []string{
				"waltons", "pna", "croxley", "stationery", "printing",
				"toner", "cartridge", "paper supplies", "typek", "ink refill",
				"business cards", "laminating", "envelopes", "notebooks",
			},
		},
		{
			Code:  "OFFICE_EQUIPMENT",
			Label: "Office Equipment",
			Keywords: []string{
				"office equipment", "office furniture", "filing cabinet",
				"shelving", "desks", "office chairs", "whiteboard",
				"aircon unit", "paper shredder", "projector",
			},
		},
		{
			Code:  "COMPUTER",
			Label: "Computer Expenses",
			Keywords: []string{
				"incredible connection", "computer mania", "wootware",
				"evetech", "laptop", "computer repair", "hardware upgrade",
				"printer", "ssd upgrade", "keyboard and mouse", "monitor",
				"it support", "router", "docking station",
			},
		},
		{
			Code:  "SOFTWARE",
			Label: "Software & Subscriptions",
			Keywords: []string{
				"microsoft 365", "google workspace", "adobe", "sage", "xero",
				"quickbooks", "zoom.us", "slack", "dropbox", "software licence",
				"pastel", "canva", "antivirus renewal", "github", "mailchimp",
				"atlassian", "openai",
			},
		},
		{
			Code:  "STAFF_REFRESHMENTS",
			Label: "Staff Refreshments",
			Keywords: []string{
				"checkers", "shoprite", "pick n pay", "spar", "woolworths food",
				"food lovers", "refreshments", "catering", "coffee supplies",
				"makro food", "tea and coffee", "water cooler", "vending",
				"staff lunch", "milk and sugar",
			},
		},
		{
			Code:  "ENTERTAINMENT",
			Label: "Entertainment & Client Gifts",
			Keywords: []string{
				"steers", "nandos", "spur", "wimpy", "mugg and bean",
				"ocean basket", "restaurant", "client lunch", "entertainment",
				"kfc", "debonairs", "fishaways", "client dinner", "gift hamper",
				"year end function", "staff party",
			},
		},
		{
			Code:  "TRAVEL",
			Label: "Travel",
			Keywords: []string{
				"flysafair", "kulula", "airlink", "south african airways",
				"uber", "bolt", "gautrain", "avis", "car hire", "sanral",
				"e-toll", "toll plaza", "flight booking", "europcar",
				"travel agent", "shuttle service", "airport parking",
			},
		},
		{
			Code:  "ACCOMMODATION",
			Label: "Accommodation",
			Keywords: []string{
				"protea hotel", "city lodge", "southern sun", "guest house",
				"lodge", "hotel", "bnb", "airbnb", "premier hotel",
				"road lodge", "self catering",
			},
		},
		{
			Code:  "VEHICLE",
			Label: "Vehicle Maintenance",
			Keywords: []string{
				"supa quick", "tiger wheel", "midas", "autozone",
				"bosch service", "tyres", "vehicle service", "panel beaters",
				"car wash", "vehicle licence", "windscreen", "brake pads",
				"battery centre", "wheel alignment", "roadworthy", "tracker unit",
			},
		},
		{
			Code:  "REPAIRS",
			Label: "Repairs & Maintenance",
			Keywords: []string{
				"builders warehouse", "chamberlain", "mica", "leroy merlin",
				"plumber", "electrician", "handyman", "maintenance", "repairs",
				"builders express", "paint supplies", "roof repair",
				"gate motor", "geyser replacement", "waterproofing",
			},
		},
		{
			Code:  "SECURITY",
			Label: "Security",
			Keywords: []string{
				"fidelity adt", "adt", "chubb", "armed response",
				"security services", "alarm monitoring", "cctv",
				"access control", "security guard", "electric fence",
				"panic button",
			},
		},
		{
			Code:  "CLEANING",
			Label: "Cleaning & Hygiene",
			Keywords: []string{
				"cleaning services", "hygiene services", "pest control",
				"laundry", "window cleaning", "carpet cleaning", "sanitiser",
				"refuse bags", "deep clean", "fumigation",
			},
		},
		{
			Code:  "LEGAL",
			Label: "Legal Fees",
			Keywords: []string{
				"attorneys", "legal fees", "notary", "conveyancing",
				"sheriff of the court", "legal retainer", "litigation",
				"counsel fees", "contract drafting",
			},
		},
		{
			Code:  "ACCOUNTING",
			Label: "Accounting Fees",
			Keywords: []string{
				"accounting fees", "bookkeeping", "audit fees",
				"tax practitioner", "accountant", "payroll bureau",
				"annual return", "cipc", "vat submission",
				"financial statements",
			},
		},
		{
			Code:  "CONSULTING",
			Label: "Consulting Fees",
			Keywords: []string{
				"consulting", "consultant", "advisory fees",
				"professional services", "retainer fee", "project fees",
				"facilitation", "business coach", "feasibility study",
			},
		},
		{
			Code:  "COURIER",
			Label: "Courier & Postage",
			Keywords: []string{
				"courier guy", "postnet", "aramex", "dawn wing", "dhl",
				"fedex", "post office", "postage", "courier", "pudo", "paxi",
				"ram couriers", "overnight delivery", "freight charges",
			},
		},
		{
			Code:  "SUBSCRIPTIONS",
			Label: "Memberships & Subscriptions",
			Keywords: []string{
				"dstv", "multichoice", "netflix", "showmax", "spotify",
				"news24", "subscription", "membership fees", "youtube premium",
				"apple.com", "amazon prime", "audible", "tv licence", "sabc",
			},
		},
		{
			Code:  "TRAINING",
			Label: "Training & Development",
			Keywords: []string{
				"udemy", "coursera", "training course", "seminar", "workshop",
				"conference fees", "skills development", "linkedin learning",
				"cpd points", "first aid training", "exam fees", "webinar",
			},
		},
		{
			Code:  "DONATIONS",
			Label: "Donations",
			Keywords: []string{
				"donation", "charity", "welfare fund", "gift of the givers",
				"npo contribution", "church tithe", "fundraiser",
			},
		},
		{
			Code:  "UNIFORMS",
			Label: "Uniforms & Protective Wear",
			Keywords: []string{
				"uniforms", "overalls", "safety boots", "protective clothing",
				"workwear", "ppe supplies", "hard hats", "reflective vests",
				"branded shirts", "embroidery", "golf shirts",
			},
		},
		{
			Code:  "TOOLS",
			Label: "Tools & Equipment",
			Keywords: []string{
				"adendorff", "tools", "equipment hire", "machinery",
				"compressor", "power tools", "drill bits", "generator hire",
				"scaffolding", "welding supplies", "ladder",
			},
		},
		{
			Code:  "LOAN_REPAYMENT",
			Label: "Loan Repayments",
			Keywords: []string{
				"loan repayment", "instalment", "wesbank", "vehicle finance",
				"bond repayment", "hire purchase", "mfc", "capitec loan",
				"business loan", "asset finance",
			},
		},
		{
			Code:  "SALES_INCOME",
			Label: "Sales Income",
			Keywords: []string{
				"yoco", "ikhokha", "snapscan", "zapper", "card settlement",
				"speedpoint", "sales deposit", "invoice settlement", "payfast",
				"ozow", "customer payment", "till takings", "cash sales",
			},
		},
		{
			Code:  "TRANSFER",
			Label: "Inter-Account Transfer",
			Keywords: []string{
				"internal transfer", "own account", "transfer to savings",
				"inter account", "sweep transfer", "fixed deposit transfer",
				"money market transfer",
			},
		},
		{
			Code:  "DRAWINGS",
			Label: "Owner Drawings",
			Keywords: []string{
				"drawings", "owner withdrawal", "member drawing",
				"personal expense", "private use", "school fees",
			},
		},
		{
			Code:  "SUNDRY",
			Label: "Sundry Expenses",
			Keywords: []string{
				"sundry", "miscellaneous", "general expense", "petty cash",
				"once off",
			},
		},
	}
}
