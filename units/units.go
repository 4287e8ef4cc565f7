package units

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"rkpd/parsers"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// defaultNames covers the abbreviations found most often in SSH uploads.
var defaultNames = map[string]string{
	"bh":    "Buah",
	"buah":  "Buah",
	"btg":   "Batang",
	"btl":   "Botol",
	"dus":   "Dus",
	"ekor":  "Ekor",
	"hr":    "Hari",
	"keg":   "Kegiatan",
	"kg":    "Kg",
	"lbr":   "Lembar",
	"ls":    "Lumpsum",
	"m2":    "M2",
	"m3":    "M3",
	"oh":    "Orang Hari",
	"ok":    "Orang Kali",
	"ob":    "Orang Bulan",
	"oj":    "Orang Jam",
	"org":   "Orang",
	"orang": "Orang",
	"pkt":   "Paket",
	"rim":   "Rim",
	"set":   "Set",
	"thn":   "Tahun",
	"unit":  "Unit",
}

var (
	mu          sync.RWMutex
	internalMap = copyMap(defaultNames)
)

// LoadUnitFile reads satuan.csv (alias, name) and merges it over the built-in names.
func LoadUnitFile(path string) (map[string]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("LoadUnitFile: open %s: %w", path, err)
	}
	defer file.Close()

	rows, err := parsers.ReadCSV(file)
	if err != nil {
		return nil, fmt.Errorf("LoadUnitFile: read %s: %w", path, err)
	}

	m := copyMap(defaultNames)
	for _, record := range rows {
		if len(record) < 2 {
			continue
		}
		alias := strings.ToLower(strings.TrimSpace(record[0]))
		name := strings.TrimSpace(record[1])
		if alias == "" || name == "" || alias == "alias" {
			continue
		}
		m[alias] = name
	}

	mu.Lock()
	internalMap = m
	mu.Unlock()
	return copyMap(m), nil
}

// ResolveName returns the canonical unit name for an alias. Unknown lower-case units are
// title-cased; anything else is returned trimmed.
func ResolveName(unit string) string {
	u := strings.Join(strings.Fields(unit), " ")
	if u == "" {
		return ""
	}
	mu.RLock()
	name, ok := internalMap[strings.ToLower(u)]
	mu.RUnlock()
	if ok {
		return name
	}
	if u == strings.ToLower(u) {
		return cases.Title(language.Indonesian).String(u)
	}
	return u
}

// Names returns a copy of the alias map.
func Names() map[string]string {
	mu.RLock()
	defer mu.RUnlock()
	return copyMap(internalMap)
}

func copyMap(src map[string]string) map[string]string {
	m := make(map[string]string, len(src))
	for k, v := range src {
		m[k] = v
	}
	return m
}
