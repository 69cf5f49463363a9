package community

import "time"

// Examples returns the recipes shown on a fresh install, dated relative to now.
func Examples(now time.Time) []Recipe {
	now = now.UTC()
	return []Recipe{
		{
			ID:          "comm-1",
			Name:        "Sunset Breeze",
			Author:      "Sophia",
			AuthorID:    "user-123",
			Description: "A refreshing cocktail with tropical flavors, perfect for summer evenings.",
			Ingredients: []string{
				"60ml white rum",
				"30ml passion fruit juice",
				"15ml lime juice",
				"15ml simple syrup",
				"Soda water",
				"Mint leaves for garnish",
			},
			Steps: []string{
				"Add rum, passion fruit juice, lime juice, and simple syrup to a shaker with ice.",
				"Shake well and strain into a tall glass filled with ice.",
				"Top with soda water and stir gently.",
				"Garnish with mint leaves.",
			},
			Likes:         24,
			Comments:      5,
			CreatedAt:     now,
			NameEs:        "Brisa del Atardecer",
			DescriptionEs: "Un cóctel refrescante con sabores tropicales, perfecto para las tardes de verano.",
			IngredientsEs: []string{
				"60ml ron blanco",
				"30ml jugo de maracuyá",
				"15ml jugo de lima",
				"15ml jarabe simple",
				"Agua con gas",
				"Hojas de menta para decorar",
			},
			StepsEs: []string{
				"Agrega ron, jugo de maracuyá, jugo de lima y jarabe simple a una coctelera con hielo.",
				"Agita bien y cuela en un vaso alto lleno de hielo.",
				"Completa con agua con gas y revuelve suavemente.",
				"Decora con hojas de menta.",
			},
		},
		{
			ID:          "comm-2",
			Name:        "Urban Spice",
			Author:      "Marcus",
			AuthorID:    "user-456",
			Description: "A sophisticated cocktail with a spicy kick, great for evening gatherings.",
			Ingredients: []string{
				"50ml bourbon",
				"20ml ginger liqueur",
				"15ml lemon juice",
				"10ml honey syrup",
				"2 dashes aromatic bitters",
				"Cinnamon stick for garnish",
			},
			Steps: []string{
				"Combine bourbon, ginger liqueur, lemon juice, honey syrup, and bitters in a mixing glass with ice.",
				"Stir until well-chilled.",
				"Strain into a rocks glass over a large ice cube.",
				"Garnish with a cinnamon stick.",
			},
			Likes:         18,
			Comments:      3,
			CreatedAt:     now.Add(-24 * time.Hour),
			NameEs:        "Especia Urbana",
			DescriptionEs: "Un cóctel sofisticado con un toque picante, ideal para reuniones nocturnas.",
			IngredientsEs: []string{
				"50ml bourbon",
				"20ml licor de jengibre",
				"15ml jugo de limón",
				"10ml jarabe de miel",
				"2 gotas de amargos aromáticos",
				"Rama de canela para decorar",
			},
			StepsEs: []string{
				"Combina bourbon, licor de jengibre, jugo de limón, jarabe de miel y amargos en un vaso mezclador con hielo.",
				"Revuelve hasta que esté bien frío.",
				"Cuela en un vaso de rocas sobre un cubo de hielo grande.",
				"Decora con una rama de canela.",
			},
		},
		{
			ID:          "comm-3",
			Name:        "Velvet Cloud",
			Author:      "Elena",
			AuthorID:    "user-789",
			Description: "A creamy, dreamy cocktail that's like dessert in a glass.",
			Ingredients: []string{
				"45ml vanilla vodka",
				"30ml coffee liqueur",
				"30ml heavy cream",
				"15ml maple syrup",
				"Pinch of sea salt",
				"Cocoa powder for garnish",
			},
			Steps: []string{
				"Add all ingredients except cocoa powder to a shaker with ice.",
				"Shake vigorously until well-chilled and frothy.",
				"Strain into a chilled coupe glass.",
				"Dust with cocoa powder.",
			},
			Likes:         32,
			Comments:      7,
			CreatedAt:     now.Add(-48 * time.Hour),
			NameEs:        "Nube de Terciopelo",
			DescriptionEs: "Un cóctel cremoso y soñador que es como un postre en una copa.",
			IngredientsEs: []string{
				"45ml vodka de vainilla",
				"30ml licor de café",
				"30ml crema espesa",
				"15ml jarabe de arce",
				"Pizca de sal marina",
				"Cacao en polvo para decorar",
			},
			StepsEs: []string{
				"Agrega todos los ingredientes excepto el cacao en polvo a una coctelera con hielo.",
				"Agita vigorosamente hasta que esté bien frío y espumoso.",
				"Cuela en una copa coupe fría.",
				"Espolvorea con cacao en polvo.",
			},
		},
	}
}
