// Package zodiac derives a western zodiac sign from a day and month of birth.
package zodiac

// Sign names.
const (
	Aquarius    = "Aquarius"
	Pisces      = "Pisces"
	Aries       = "Aries"
	Taurus      = "Taurus"
	Gemini      = "Gemini"
	Cancer      = "Cancer"
	Leo         = "Leo"
	Virgo       = "Virgo"
	Libra       = "Libra"
	Scorpio     = "Scorpio"
	Sagittarius = "Sagittarius"
	Capricorn   = "Capricorn"
)

// cusp is the last day of the earlier sign within each month. A birthday on
// or before the cusp belongs to the sign that started the previous month.
var table = [13]struct {
	cusp    int
	before  string
	onAfter string
}{
	1:  {19, Capricorn, Aquarius},
	2:  {18, Aquarius, Pisces},
	3:  {20, Pisces, Aries},
	4:  {19, Aries, Taurus},
	5:  {20, Taurus, Gemini},
	6:  {20, Gemini, Cancer},
	7:  {22, Cancer, Leo},
	8:  {22, Leo, Virgo},
	9:  {22, Virgo, Libra},
	10: {22, Libra, Scorpio},
	11: {21, Scorpio, Sagittarius},
	12: {21, Sagittarius, Capricorn},
}

// Sign returns the zodiac sign for the given day and month of birth, or an
// empty string when the pair is out of range.
func Sign(day, month int) string {
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return ""
	}
	entry := table[month]
	if day <= entry.cusp {
		return entry.before
	}
	return entry.onAfter
}
