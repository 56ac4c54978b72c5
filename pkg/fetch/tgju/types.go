package tgju

import "github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"

// symbolInfo describes how one registry keyword maps onto tgju.org: the row
// header on the live page, the history-data instrument slug, the market
// parameter, and the factor applied to quoted prices (tgju quotes rial,
// users read toman).
type symbolInfo struct {
	Display string
	Slug    string
	Market  string
	Scale   float64
	Unit    string
}

func defaultSymbols(category fetch.Category) map[string]symbolInfo {
	switch category {
	case fetch.CategoryCurrency:
		return map[string]symbolInfo{
			"دلار":    {Display: "دلار", Slug: "price_dollar_rl", Market: "currency", Scale: 0.1, Unit: "تومان"},
			"یورو":    {Display: "یورو", Slug: "price_eur", Market: "currency", Scale: 0.1, Unit: "تومان"},
			"پوند":    {Display: "پوند انگلیس", Slug: "price_gbp", Market: "currency", Scale: 0.1, Unit: "تومان"},
			"درهم":    {Display: "درهم امارات", Slug: "price_aed", Market: "currency", Scale: 0.1, Unit: "تومان"},
			"لیر":     {Display: "لیر ترکیه", Slug: "price_try", Market: "currency", Scale: 0.1, Unit: "تومان"},
			"یوان":    {Display: "یوان چین", Slug: "price_cny", Market: "currency", Scale: 0.1, Unit: "تومان"},
			"ین ژاپن": {Display: "ین ژاپن", Slug: "price_jpy", Market: "currency", Scale: 0.1, Unit: "تومان"},
			"دینار":   {Display: "دینار عراق", Slug: "price_iqd", Market: "currency", Scale: 0.1, Unit: "تومان"},
		}
	case fetch.CategoryGold:
		return map[string]symbolInfo{
			"سکه امامی":      {Display: "سکه امامی", Slug: "sekee", Market: "gold", Scale: 0.1, Unit: "تومان"},
			"سکه بهار آزادی": {Display: "سکه بهار آزادی", Slug: "sekeb", Market: "gold", Scale: 0.1, Unit: "تومان"},
			"نیم سکه":        {Display: "نیم سکه", Slug: "nim", Market: "gold", Scale: 0.1, Unit: "تومان"},
			"ربع سکه":        {Display: "ربع سکه", Slug: "rob", Market: "gold", Scale: 0.1, Unit: "تومان"},
			"انس طلا":        {Display: "انس طلا", Slug: "ons", Market: "gold", Scale: 1, Unit: "دلار"},
			"مثقال طلا":      {Display: "مثقال طلا", Slug: "mesghal", Market: "gold", Scale: 0.1, Unit: "تومان"},
			"طلای 18 عیار":   {Display: "طلای 18 عیار", Slug: "geram18", Market: "gold", Scale: 0.1, Unit: "تومان"},
			"سکه":            {Display: "سکه امامی", Slug: "sekee", Market: "gold", Scale: 0.1, Unit: "تومان"},
			"طلا":            {Display: "انس طلا", Slug: "ons", Market: "gold", Scale: 1, Unit: "دلار"},
		}
	case fetch.CategoryCrypto:
		return map[string]symbolInfo{
			"بیت کوین": {Display: "بیت کوین", Slug: "crypto-bitcoin", Market: "crypto", Scale: 1, Unit: "دلار"},
			"بیتکوین":  {Display: "بیت کوین", Slug: "crypto-bitcoin", Market: "crypto", Scale: 1, Unit: "دلار"},
			"اتریوم":   {Display: "اتریوم", Slug: "crypto-ethereum", Market: "crypto", Scale: 1, Unit: "دلار"},
			"تتر":      {Display: "تتر", Slug: "crypto-tether", Market: "crypto", Scale: 1, Unit: "دلار"},
			"ریپل":     {Display: "ریپل", Slug: "crypto-ripple", Market: "crypto", Scale: 1, Unit: "دلار"},
			"دوج کوین": {Display: "دوج کوین", Slug: "crypto-dogecoin", Market: "crypto", Scale: 1, Unit: "دلار"},
			"سولانا":   {Display: "سولانا", Slug: "crypto-solana", Market: "crypto", Scale: 1, Unit: "دلار"},
			"کاردانو":  {Display: "کاردانو", Slug: "crypto-cardano", Market: "crypto", Scale: 1, Unit: "دلار"},
		}
	default:
		// Iranian symbols and indices are addressed by their own name on
		// the stocks instrument endpoint.
		return nil
	}
}

// historyResponse is the payload of the history-data endpoint. Each entry is
// [open, low, high, close, changeHTML, changePctHTML, gregorian, jalali].
type historyResponse struct {
	Data [][]string `json:"data"`
}
