package bands

// buildDefaultRegistry populates the built-in filter set. Central
// wavelengths and effective widths are in angstrom and follow the
// commonly quoted values for each survey's filter system.
func buildDefaultRegistry() *Registry {
	r := NewRegistry()

	defaults := []Band{
		// SDSS
		{Name: "sdssu", CenterAA: 3543, WidthAA: 568},
		{Name: "sdssg", CenterAA: 4770, WidthAA: 1387},
		{Name: "sdssr", CenterAA: 6231, WidthAA: 1111},
		{Name: "sdssi", CenterAA: 7625, WidthAA: 1044},
		{Name: "sdssz", CenterAA: 9134, WidthAA: 1124},

		// Bessell
		{Name: "bessellux", CenterAA: 3663, WidthAA: 650},
		{Name: "bessellb", CenterAA: 4361, WidthAA: 890},
		{Name: "bessellv", CenterAA: 5448, WidthAA: 840},
		{Name: "bessellr", CenterAA: 6407, WidthAA: 1580},
		{Name: "besselli", CenterAA: 7980, WidthAA: 1540},

		// ZTF
		{Name: "ztfg", CenterAA: 4722, WidthAA: 1282},
		{Name: "ztfr", CenterAA: 6340, WidthAA: 1552},
		{Name: "ztfi", CenterAA: 7886, WidthAA: 1238},

		// ATLAS
		{Name: "atlasc", CenterAA: 5330, WidthAA: 2280},
		{Name: "atlaso", CenterAA: 6790, WidthAA: 2580},

		// 2MASS
		{Name: "2massj", CenterAA: 12350, WidthAA: 1620},
		{Name: "2massh", CenterAA: 16620, WidthAA: 2510},
		{Name: "2massks", CenterAA: 21590, WidthAA: 2620},

		// Swift UVOT
		{Name: "uvot::uvw2", CenterAA: 2085, WidthAA: 667},
		{Name: "uvot::uvm2", CenterAA: 2245, WidthAA: 498},
		{Name: "uvot::uvw1", CenterAA: 2684, WidthAA: 693},
		{Name: "uvot::u", CenterAA: 3465, WidthAA: 785},
		{Name: "uvot::b", CenterAA: 4392, WidthAA: 975},
		{Name: "uvot::v", CenterAA: 5468, WidthAA: 769},
	}

	for _, b := range defaults {
		r.MustRegister(b)
	}

	return r
}
