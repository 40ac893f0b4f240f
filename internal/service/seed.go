package service

// seedLesson describes one lesson of the initial data set inserted into an
// empty database on first start.
type seedLesson struct {
	title     string
	questions []seedQuestion
}

type seedQuestion struct {
	text      string
	correct   string
	incorrect []string
}

// seedLessons is the initial catalog. IDs are assigned by the database at
// insert time; the literals carry no identifiers of their own.
var seedLessons = []seedLesson{
	{
		title: "Lesson 1: Networking Basics",
		questions: []seedQuestion{
			{
				text:    "What is an IP address?",
				correct: "Unique address of a device in a network",
				incorrect: []string{
					"Communication protocol",
					"Connection type",
					"Email address",
				},
			},
			{
				text:    "What is DNS?",
				correct: "Domain Name System",
				incorrect: []string{
					"Type of internet connection",
					"Network protocol",
					"IP address",
				},
			},
		},
	},
	{
		title: "Lesson 2: IP Protocol",
		questions: []seedQuestion{
			{
				text:    "What does HTTP stand for?",
				correct: "HyperText Transfer Protocol",
				incorrect: []string{
					"HyperText Transmission Process",
					"High Transfer Protocol",
					"Home Transfer Protocol",
				},
			},
			{
				text:    "What is a LAN?",
				correct: "Local Area Network",
				incorrect: []string{
					"Wide area network",
					"Public computer network",
					"Wireless network",
				},
			},
			{
				text:    "What does VPN stand for?",
				correct: "Virtual Private Network",
				incorrect: []string{
					"Virtual Public Network",
					"Very Private Network",
					"Verified Private Network",
				},
			},
		},
	},
	{
		title: "Lesson 3: HTTP and HTTPS",
		questions: []seedQuestion{
			{
				text:    "What does HTTPS stand for?",
				correct: "HyperText Transfer Protocol Secure",
				incorrect: []string{
					"HyperText Transfer Protocol Standard",
					"HyperText Transport Page Secure",
					"High Transfer Protocol Service",
				},
			},
			{
				text:    "Which port is used by HTTP?",
				correct: "Port 80",
				incorrect: []string{
					"Port 443",
					"Port 8080",
					"Port 21",
				},
			},
		},
	},
}
