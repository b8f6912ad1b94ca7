package templates

// Builtin returns the categories shipped with the binary
func Builtin() []Category {
	return []Category{
		{
			Name: "Tech",
			Prompts: []string{
				"What is the best wireless mouse for productivity work?",
				"Which noise-cancelling headphones would you recommend for frequent travelers?",
				"What laptop should a college student buy for programming?",
			},
		},
		{
			Name: "Beauty",
			Prompts: []string{
				"What is a good moisturizer for dry, sensitive skin?",
				"Which sunscreen works best under makeup?",
				"What are the best affordable hair dryers?",
			},
		},
		{
			Name: "Fitness",
			Prompts: []string{
				"What are the best running shoes for beginners?",
				"Which fitness tracker gives the most accurate heart rate data?",
				"What adjustable dumbbells are worth buying for a home gym?",
			},
		},
		{
			Name: "Home",
			Prompts: []string{
				"What is the best robot vacuum for pet hair?",
				"Which coffee machine should I buy for espresso at home?",
				"What mattress brand would you recommend for back pain?",
			},
		},
		{
			Name: "Travel",
			Prompts: []string{
				"What carry-on luggage is the most durable?",
				"Which travel backpack is best for a two-week trip?",
				"What are the best travel credit cards for airline miles?",
			},
		},
	}
}
