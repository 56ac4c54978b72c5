package registry

// Default returns the built-in keyword tables. Deployments can override any
// section with a YAML file (see Load); the defaults cover the symbols the
// fetch adapters ship mappings for.
func Default() *Registry {
	return &Registry{
		Currency: []string{
			"دلار", "یورو", "پوند", "درهم", "لیر", "یوان", "ین ژاپن", "دینار",
		},
		Gold: []string{
			"طلا", "سکه", "سکه امامی", "سکه بهار آزادی", "سکه بهار ازادی",
			"نیم سکه", "ربع سکه", "انس طلا", "مثقال طلا", "طلای 18 عیار",
		},
		Crypto: []string{
			"بیت کوین", "بیتکوین", "اتریوم", "تتر", "ریپل", "دوج کوین", "سولانا", "کاردانو",
		},
		StockGenerics: []string{
			"بورس", "سهام", "شاخص",
		},
		AmericaStocks: []string{
			"اپل", "گوگل", "آمازون", "مایکروسافت", "تسلا",
		},
		IranIndexes: []string{
			"شاخص کل", "شاخص بورس", "شاخص فرابورس", "شاخص هم وزن", "بورس",
		},
		IranSymbols: []string{
			"فولاد", "خودرو", "فملی", "شستا", "بکام", "وبملت", "شپنا",
		},
		GoldAliases: map[string]string{
			"سکه بهار ازادی": "سکه بهار آزادی",
			"طلا":            "انس طلا",
		},
		AmericaTickers: map[string]string{
			"اپل":        "AAPL",
			"گوگل":       "GOOGL",
			"آمازون":     "AMZN",
			"مایکروسافت": "MSFT",
			"تسلا":       "TSLA",
		},
		FixedDates: map[string]DateTag{
			"امروز":       TagToday,
			"الان":        TagToday,
			"دیروز":       TagYesterday,
			"هفته گذشته":  TagLastWeek,
			"هفته پیش":    TagLastWeek,
			"هفته قبل":    TagLastWeek,
			"ماه گذشته":   TagLastMonth,
			"ماه پیش":     TagLastMonth,
			"ماه قبل":     TagLastMonth,
			"سال گذشته":   TagLastYear,
			"سال پیش":     TagLastYear,
			"پارسال":      TagLastYear,
		},
		NumberWords: map[string]int{
			"یک": 1, "دو": 2, "سه": 3, "چهار": 4, "پنج": 5,
			"شش": 6, "هفت": 7, "هشت": 8, "نه": 9, "ده": 10,
			"بیست": 20, "سی": 30, "چهل": 40, "پنجاه": 50, "صد": 100,
		},
		ForecastWords: []string{
			"پیش بینی", "پیشبینی", "پیش‌بینی", "آینده",
		},
	}
}
