package normalize

// Vocabulary tables are closed sets: a token only becomes an attribute when it
// equals an entry exactly. Substring matches are forbidden so names that happen
// to contain a short code ("US Open", "Plus Ultra") keep their tokens unless
// the token stands alone. All entries are Latin; tokens in other scripts can
// never extract an attribute and fall through into the base name.
//
// The tables are exported so vocabulary changes are reviewable and testable
// independent of the parsing logic.

// Resolution is a normalized stream resolution tag.
type Resolution string

// Recognized resolutions. 4k and 8k map to uhd.
const (
	ResolutionSD  Resolution = "sd"
	ResolutionHD  Resolution = "hd"
	ResolutionFHD Resolution = "fhd"
	ResolutionUHD Resolution = "uhd"
)

// ResolutionTokens maps decoration tokens to their normalized resolution.
// Matched case-insensitively against folded tokens.
var ResolutionTokens = []struct {
	Token string
	Value Resolution
}{
	{"4k", ResolutionUHD},
	{"8k", ResolutionUHD},
	{"uhd", ResolutionUHD},
	{"fhd", ResolutionFHD},
	{"1080p", ResolutionFHD},
	{"1080", ResolutionFHD},
	{"hd", ResolutionHD},
	{"720p", ResolutionHD},
	{"sd", ResolutionSD},
	{"480p", ResolutionSD},
}

// CountryTokens lists the ISO 3166-1 alpha-2 codes the parser recognizes.
// Country tokens must appear uppercase in the raw name; a lowercase "ru" in
// the middle of a title is part of the title, not a country marker.
var CountryTokens = []string{
	"AE", "AL", "AM", "AR", "AT", "AU", "AZ", "BA", "BE", "BG",
	"BR", "BY", "CA", "CH", "CL", "CN", "CO", "CZ", "DE", "DK",
	"EE", "EG", "ES", "FI", "FR", "GB", "GE", "GR", "HR", "HU",
	"ID", "IE", "IL", "IN", "IR", "IS", "IT", "JP", "KG", "KR",
	"KZ", "LT", "LV", "MD", "MK", "MX", "NL", "NO", "NZ", "PL",
	"PT", "RO", "RS", "RU", "SA", "SE", "SI", "SK", "TH", "TJ",
	"TM", "TR", "UA", "UK", "US", "UZ", "VN", "ZA",
}

// countryAliases maps project aliases onto canonical alpha-2 codes.
var countryAliases = map[string]string{
	"UK": "GB",
}

// LangTokens lists the language codes the parser recognizes, matched
// case-insensitively after the country scan has consumed its tokens.
var LangTokens = []string{
	"en", "ru", "es", "de", "fr", "pt", "it", "ua", "by", "kz",
}

// VariantTokens maps decoration tokens to normalized variant tags.
// Matched case-insensitively, except "+1"/"+2" which are literal.
var VariantTokens = []struct {
	Token string
	Value string
}{
	{"+1", "plus1"},
	{"+2", "plus2"},
	{"plus1", "plus1"},
	{"plus2", "plus2"},
	{"plus", "plus"},
	{"kids", "kids"},
	{"child", "kids"},
	{"junior", "kids"},
	{"news", "news"},
	{"east", "region-east"},
	{"west", "region-west"},
	{"north", "region-north"},
	{"south", "region-south"},
}

// NoiseTokens are decoration words dropped from the base name without
// producing an attribute.
var NoiseTokens = []string{
	"tv", "channel",
}

var (
	resolutionSet = func() map[string]Resolution {
		set := make(map[string]Resolution, len(ResolutionTokens))
		for _, entry := range ResolutionTokens {
			set[entry.Token] = entry.Value
		}
		return set
	}()

	countrySet = func() map[string]string {
		set := make(map[string]string, len(CountryTokens))
		for _, code := range CountryTokens {
			canonical := code
			if alias, ok := countryAliases[code]; ok {
				canonical = alias
			}
			set[code] = canonical
		}
		return set
	}()

	langSet = func() map[string]struct{} {
		set := make(map[string]struct{}, len(LangTokens))
		for _, code := range LangTokens {
			set[code] = struct{}{}
		}
		return set
	}()

	variantSet = func() map[string]string {
		set := make(map[string]string, len(VariantTokens))
		for _, entry := range VariantTokens {
			set[entry.Token] = entry.Value
		}
		return set
	}()

	noiseSet = func() map[string]struct{} {
		set := make(map[string]struct{}, len(NoiseTokens))
		for _, token := range NoiseTokens {
			set[token] = struct{}{}
		}
		return set
	}()
)
