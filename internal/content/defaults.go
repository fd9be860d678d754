package content

// Default returns the Level Up site content.
func Default() *Content {
	return &Content{
		Meta: Meta{
			Title:         "Level Up Installation Corp | Data Center Infrastructure",
			Description:   "We build the physical backbone of the internet. Specialized structural installation for hyperscale data centers. Based in SLC, deploying nationwide.",
			OGTitle:       "Level Up Installation Corp",
			OGDescription: "Specialized structural installation for hyperscale data centers.",
		},
		Company: Company{
			Name:            "Level Up",
			Tagline:         "Structure & Data",
			YearEstablished: "2014",
			Location:        "SLC, UT",
			City:            "Salt Lake City, UT",
			Phone:           "385-335-5542",
			Email:           "johncook@levelupinstalling.com",
			Summary:         "Precision structural installation for the digital age.",
		},
		Nav: []NavLink{
			{Label: "Expertise", Target: "expertise", Href: "/#expertise"},
			{Label: "Projects", Target: "projects", Href: "/#projects"},
			{Label: "Safety", Target: "safety", Href: "/#safety"},
			{Label: "Contact", Target: "contact", Href: "/#contact"},
		},
		Hero: Hero{
			Status:      "Global Operations / Active",
			Headline:    []string{"Structure", "& Data"},
			Description: "We build the physical backbone of the internet. Specialized installation for hyperscale data centers.",
			CTALabel:    "Start Project",
			CTAHref:     "/contact",
		},
		Marquee: []string{
			"60+ Technicians",
			"Nationwide Deployment",
			"OSHA 30 Certified",
			"Precision Installation",
		},
		MarqueeRepeat: 8,
		Services: []Service{
			{
				ID:    "01",
				Title: "Containment Systems",
				Desc:  "Thermal isolation architecture. Full-scale hot and cold aisle solutions. From field measurements to hermetic sealing.",
				Specs: []string{"HAC/CAC Configurations", "Structural Ceiling Grids", "Custom End-Row Assemblies"},
			},
			{
				ID:    "02",
				Title: "Critical Conveyance",
				Desc:  "The nervous system of the facility. Seismic-rated overhead and underfloor pathways deployed at scale.",
				Specs: []string{"Fiber Raceway Integration", "Basket Tray Systems", "Seismic bracing (Zone 4)"},
			},
			{
				ID:    "03",
				Title: "Structural Decking",
				Desc:  "Heavy infrastructure support. Industrial steel and FRP decking creating access in complex mechanical environments.",
				Specs: []string{"Generator Gantries", "Maintenance Walkways", "Industrial Steel & FRP"},
			},
			{
				ID:    "04",
				Title: "Raised Access Floor",
				Desc:  "The literal foundation. Laser-leveled grid systems built to support massive static loads. Live-environment retrofits.",
				Specs: []string{"Pedestal Stabilization", "Airflow Panel Logic", "Live-Environment Retrofits"},
			},
		},
		Statement: Statement{
			Kicker:      "Why We Exist",
			Body:        "We execute the **hard stuff** so you don't have to.",
			Image:       "/assets/datacenter-construction.png",
			ImageAlt:    "Data Center Construction",
			ReportLabel: "Field Report",
			ReportText:  "Zero-defect delivery maintained across 15 sites.",
		},
		Features: []Feature{
			{Number: "01", Title: "Rapid Mobilization", Desc: "60+ technicians ready to deploy nationwide. We keep the schedule moving."},
			{Number: "02", Title: "Clinical Standards", Desc: "Strict white-space cleanliness protocols. We treat the data center like a lab."},
		},
		Footer: Footer{
			CTA: "Let's Talk",
			Sitemap: []NavLink{
				{Label: "Capabilities", Target: "expertise", Href: "/#expertise"},
				{Label: "Projects", Target: "projects", Href: "/#projects"},
				{Label: "Safety", Target: "safety", Href: "/#safety"},
			},
		},
		Contact: ContactPage{
			Recipient:      "johncook@levelupinstalling.com",
			DefaultSubject: "New Installation Project",
			Subjects: []string{
				"New Installation Project",
				"Retrofit / Upgrade",
				"Partnership Inquiry",
				"Other",
			},
			Kicker:      "Secure Channel",
			Headline:    []string{"Initiate", "Protocol"},
			HQ:          "Deploying Nationwide",
			SubmitLabel: "Transmit Data",
		},
		Team: []Member{
			{Name: "John Cook", Role: "Owner", Email: "johncook@levelupinstalling.com", Phone: "385-335-5542"},
			{Name: "Trista Cook", Role: "Owner", Email: "tristacook@levelupinstalling.com", Phone: "808-856-6746"},
			{Name: "Quentin Peterson", Role: "Workforce & Ops", Email: "quentin@levelupinstalling.com", Phone: "385-347-1648"},
			{Name: "Avery Peterson", Role: "Project Manager", Email: "avery@levelupinstalling.com", Phone: "801-400-3600"},
		},
	}
}
