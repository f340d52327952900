// Package features describes the house attributes the price model consumes
// and turns a decoded JSON request into an ordered feature vector.
package features

// Range is a suggested input range for a feature
type Range struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Step float64 `json:"step"`
}

// Spec describes one feature for the form and the /features endpoint
type Spec struct {
	Name        string
	Label       string
	Description string
	Hint        string
	Range       Range
	Default     float64
	Boolean     bool
}

// Catalogue lists every known feature in the default training order
var Catalogue = []Spec{
	{Name: "bedrooms", Label: "Bedrooms", Description: "Number of bedrooms",
		Range: Range{0, 7, 1}, Default: 3},
	{Name: "bathrooms", Label: "Bathrooms", Description: "Number of bathrooms",
		Range: Range{0, 5, 0.25}, Default: 2},
	{Name: "sqft_living", Label: "Living Area (sqft)", Description: "Square footage of living space",
		Range: Range{300, 7000, 10}, Default: 2000},
	{Name: "floors", Label: "Floors", Description: "Number of floors",
		Range: Range{1, 3.5, 0.5}, Default: 1},
	{Name: "waterfront", Label: "Waterfront", Description: "Has waterfront (0=No, 1=Yes)",
		Hint: "Has waterfront view", Range: Range{0, 1, 1}, Default: 0, Boolean: true},
	{Name: "view", Label: "View Quality", Description: "View quality (0-4)",
		Range: Range{0, 4, 1}, Default: 0},
	{Name: "condition", Label: "Condition", Description: "Condition rating (1-5)",
		Range: Range{1, 5, 1}, Default: 3},
	{Name: "grade", Label: "Grade", Description: "Grade rating (4-12)",
		Range: Range{4, 12, 1}, Default: 7},
	{Name: "sqft_above", Label: "Above Ground (sqft)", Description: "Square footage above ground",
		Range: Range{300, 7000, 10}, Default: 1500},
	{Name: "sqft_basement", Label: "Basement (sqft)", Description: "Square footage of basement",
		Range: Range{0, 2500, 10}, Default: 0},
	{Name: "yr_built", Label: "Year Built", Description: "Year built",
		Hint: "Year the house was built", Range: Range{1900, 2025, 1}, Default: 1980},
	{Name: "yr_renovated", Label: "Year Renovated", Description: "Year renovated (0 if never)",
		Range: Range{0, 2025, 1}, Default: 0},
	{Name: "lat", Label: "Latitude", Description: "Latitude",
		Hint: "Latitude coordinate", Range: Range{47.0, 48.0, 0.0001}, Default: 47.56},
	{Name: "long", Label: "Longitude", Description: "Longitude",
		Hint: "Longitude coordinate", Range: Range{-123.0, -121.5, 0.0001}, Default: -122.2},
	{Name: "sqft_living15", Label: "Living Area 2015 (sqft)", Description: "Living area in 2015",
		Hint: "Living area in 2015 (for nearby houses)", Range: Range{500, 5000, 10}, Default: 2000},
}

// Bounded reports whether the spec carries a usable min/max range
func (s Spec) Bounded() bool {
	return s.Range.Max > s.Range.Min
}

var byName = func() map[string]Spec {
	m := make(map[string]Spec, len(Catalogue))
	for _, s := range Catalogue {
		m[s.Name] = s
	}
	return m
}()

// Names returns the catalogue feature names in order
func Names() []string {
	names := make([]string, len(Catalogue))
	for i, s := range Catalogue {
		names[i] = s.Name
	}
	return names
}

// Lookup finds a feature by name
func Lookup(name string) (Spec, bool) {
	s, ok := byName[name]
	return s, ok
}

// ForModel returns specs for the given names in that order. Names the
// catalogue does not know get a bare spec labelled with the name itself,
// with no range and no step.
func ForModel(names []string) []Spec {
	specs := make([]Spec, 0, len(names))
	for _, name := range names {
		s, ok := byName[name]
		if !ok {
			s = Spec{Name: name, Label: name, Description: name}
		}
		specs = append(specs, s)
	}
	return specs
}

// Descriptions maps each known name to its description
func Descriptions(names []string) map[string]string {
	out := make(map[string]string, len(names))
	for _, name := range names {
		if s, ok := byName[name]; ok {
			out[name] = s.Description
		}
	}
	return out
}

// Ranges maps each known name to its suggested range
func Ranges(names []string) map[string]Range {
	out := make(map[string]Range, len(names))
	for _, name := range names {
		if s, ok := byName[name]; ok {
			out[name] = s.Range
		}
	}
	return out
}
