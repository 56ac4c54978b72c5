package answer

import (
	"fmt"
	"strings"
	"time"

	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/fetch"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/forecast"
	"github.com/MohammadrezaSheikholeslami84/Persian-Financial-Chatbot/pkg/jalali"
)

const (
	msgUnknown = "❌ نوع درخواست مشخص نیست یا پشتیبانی نمی‌شود."

	gregorianLayout = "2006-01-02"
)

func formatPriceAtDate(symbol string, row fetch.Row, unit string) string {
	return fmt.Sprintf("قیمت %s در تاریخ %s (معادل %s) برابر با %s %s بوده است.",
		symbol,
		jalaliOf(row),
		row.GregorianDate.Format(gregorianLayout),
		fetch.FormatNumber(row.Close, decimalsFor(unit)),
		unit)
}

// formatReturnSince phrases the move from the close at date to today's price.
func formatReturnSince(symbol string, date time.Time, past, today, pct float64, unit string) string {
	decimals := decimalsFor(unit)
	from := fetch.FormatNumber(past, decimals)
	to := fetch.FormatNumber(today, decimals)
	day := jalali.FromGregorian(date)

	switch {
	case pct > 0:
		return fmt.Sprintf("✅ از تاریخ %s، قیمت %s %s%% افزایش داشته و از %s به %s %s رسیده است.",
			day, symbol, fetch.FormatNumber(pct, 2), from, to, unit)
	case pct < 0:
		return fmt.Sprintf("🔻 از تاریخ %s، قیمت %s %s%% کاهش داشته و از %s به %s %s رسیده است.",
			day, symbol, fetch.FormatNumber(-pct, 2), from, to, unit)
	default:
		return fmt.Sprintf("قیمت %s از تاریخ %s تا امروز تغییری نکرده و روی %s %s ثابت مانده است.",
			symbol, day, to, unit)
	}
}

// formatZeroBase covers the undefined percentage when the past close is zero.
func formatZeroBase(symbol string) string {
	return fmt.Sprintf("قیمت اولیه %s صفر بوده و امکان محاسبه تغییرات وجود ندارد.", symbol)
}

func formatNoData(symbol string, date time.Time) string {
	return fmt.Sprintf("متاسفانه داده‌ای برای %s در تاریخ %s (معادل %s) موجود نیست. 🙏",
		symbol, jalali.FromGregorian(date), date.Format(gregorianLayout))
}

func formatForecast(pred forecast.Prediction) string {
	trend := "ثابت بماند"
	switch pred.Trend {
	case forecast.TrendUp:
		trend = "روند صعودی داشته باشد 📈"
	case forecast.TrendDown:
		trend = "روند نزولی داشته باشد 📉"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "پیش‌بینی می‌شود قیمت %s در روزهای آینده %s.\n", pred.Symbol, trend)
	decimals := decimalsFor(pred.Unit)
	for _, day := range pred.Days {
		fmt.Fprintf(&b, "🔹 %s: %s %s\n",
			jalali.FromGregorian(day.Date),
			fetch.FormatNumber(day.Price, decimals), pred.Unit)
	}
	b.WriteString("⚠️ این پیش‌بینی صرفاً بر اساس روند گذشته است و توصیه مالی نیست.")
	return b.String()
}

func jalaliOf(row fetch.Row) string {
	if row.JalaliDate != "" {
		return row.JalaliDate
	}
	return jalali.FromGregorian(row.GregorianDate)
}

func decimalsFor(unit string) int {
	if unit == "دلار" {
		return 2
	}
	return 0
}
