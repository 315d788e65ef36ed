package translate

import "strings"

// rule converts one technical parameter into its German field(s).
// ok is false when the value cannot be parsed.
type rule func(value string) (fields map[string]string, ok bool)

var rules = map[string]rule{
	"Rozstaw śrub":    boltPattern,
	"Odsadzenie (ET)": offset,
	"Średnica felgi":  rimDiameter,
	"Szerokość felgi": rimWidth,
}

// "5x112" -> Lochzahl 5, Lochkreis 112 mm
func boltPattern(value string) (map[string]string, bool) {
	normalized := strings.NewReplacer("×", "x", "X", "x").Replace(value)
	parts := strings.Split(normalized, "x")
	if len(parts) != 2 {
		return nil, false
	}
	holes, circle := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if holes == "" || circle == "" {
		return nil, false
	}
	return map[string]string{
		"Lochzahl":  holes,
		"Lochkreis": circle + " mm",
	}, true
}

func offset(value string) (map[string]string, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return nil, false
	}
	return map[string]string{"Einpresstiefe (ET)": v + " mm"}, true
}

func rimDiameter(value string) (map[string]string, bool) {
	v := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(value, `"`, ""), ".", ","))
	if v == "" {
		return nil, false
	}
	return map[string]string{"Zollgröße": v}, true
}

func rimWidth(value string) (map[string]string, bool) {
	v := strings.ReplaceAll(strings.ReplaceAll(value, `"`, ""), ",", ".")
	if i := strings.Index(v, "."); i >= 0 {
		v = v[:i]
	}
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, false
	}
	return map[string]string{"Felgenbreite": v}, true
}
