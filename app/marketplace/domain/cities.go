package domain

import "slices"

// Cities are the locations a user or service can be registered in.
var Cities = []string{
	"Jaipur", "Jodhpur", "Udaipur", "Ajmer", "Kota",
	"Bikaner", "Alwar", "Bhilwara", "Sikar", "Pali",
	"Bundi", "Chittorgarh", "Jaisalmer", "Tonk", "Barmer",
	"Nagaur", "Sawai Madhopur", "Banswara", "Sri Ganganagar", "Churu",
}

// IsCity reports whether name is one of Cities.
func IsCity(name string) bool { return slices.Contains(Cities, name) }
