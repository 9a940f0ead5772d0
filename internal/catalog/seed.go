package catalog

// seedProducts is the demo catalog loaded at process start. Some related ids
// point at products that were removed from the demo set; the store drops them
// when resolving recommendations.
func seedProducts() []Product {
	return []Product{
		{
			ID: "p001", Name: "Men's Trail Runner XT Shoes", Category: "Footwear",
			Description: "Lightweight and durable trail running shoes with waterproof Gore-Tex lining. Perfect for tackling any terrain in any weather. Features enhanced grip and cushioning.",
			Price:       139.99, Stock: 45, Rating: 4.7,
			Tags:       []string{"running", "waterproof", "men", "outdoor", "trail"},
			RelatedIDs: []string{"p002", "p005"},
		},
		{
			ID: "p002", Name: "Performance Athletic Socks (3-Pack)", Category: "Apparel",
			Description: "Breathable, moisture-wicking socks designed for high-intensity sports. Cushioned for comfort and support.",
			Price:       24.99, Stock: 150, Rating: 4.9,
			Tags:       []string{"socks", "running", "unisex", "apparel", "breathable"},
			RelatedIDs: []string{"p001", "p003"},
		},
		{
			ID: "p003", Name: "Women's Yoga Flex Leggings", Category: "Apparel",
			Description: "High-waisted, flexible leggings made from recycled materials. Four-way stretch fabric provides comfort and freedom of movement for yoga or gym workouts.",
			Price:       79.50, Stock: 80, Rating: 4.6,
			Tags:       []string{"leggings", "women", "yoga", "gym", "sustainable"},
			RelatedIDs: []string{"p002", "p004"},
		},
		{
			ID: "p004", Name: "Eco-Friendly Yoga Mat", Category: "Accessories",
			Description: "A non-slip yoga mat made from natural tree rubber and cork. Provides excellent grip and is 100% biodegradable.",
			Price:       65.00, Stock: 60, Rating: 4.8,
			Tags:       []string{"yoga", "fitness", "eco-friendly", "accessory"},
			RelatedIDs: []string{"p003"},
		},
		{
			ID: "p005", Name: "Smart Fitness Tracker v5", Category: "Electronics",
			Description: "Track your steps, heart rate, sleep patterns, and workouts with this sleek fitness tracker. Features a 10-day battery life and a vibrant color display.",
			Price:       89.99, Stock: 110, Rating: 4.5,
			Tags:       []string{"fitness", "tracker", "smartwatch", "health", "electronics"},
			RelatedIDs: []string{"p001", "p002", "p003"},
		},
		{
			ID: "p007", Name: "ProNoise Cancelling Headphones", Category: "Electronics",
			Description: "Immerse yourself in sound with these over-ear active noise-cancelling headphones. Delivers crisp audio and deep bass with 30 hours of playtime.",
			Price:       249.00, Stock: 30, Rating: 4.8,
			Tags:       []string{"headphones", "audio", "electronics", "noise-cancelling"},
			RelatedIDs: []string{"p005"},
		},
		{
			ID: "p009", Name: "4K Action Camera Bundle", Category: "Electronics",
			Description: "Capture your adventures in stunning 4K. This bundle includes a waterproof case, various mounts, and a spare battery.",
			Price:       199.99, Stock: 40, Rating: 4.6,
			Tags:       []string{"camera", "4k", "action", "electronics", "waterproof"},
			RelatedIDs: []string{"p010"},
		},
	}
}

func seedOrders() []Order {
	return []Order{
		{
			ID: "ord_12345", Status: "Shipped", Total: 139.99,
			Items: []OrderItem{{ProductID: "p001", Quantity: 1}},
		},
		{
			ID: "ord_67890", Status: "Processing", Total: 109.97,
			Items: []OrderItem{
				{ProductID: "p006", Quantity: 1},
				{ProductID: "p008", Quantity: 2},
			},
		},
	}
}

func seedReviews() map[string][]Review {
	return map[string][]Review{
		"p001": {
			{Username: "TrailRunnerZoe", Rating: 5, Comment: "Absolutely fantastic grip on wet rocks. Kept my feet dry through a stream!"},
			{Username: "HikerMike", Rating: 4, Comment: "Very comfortable, but they run a little narrow. Consider sizing up."},
		},
		"p007": {
			{Username: "AudioPhileAnna", Rating: 5, Comment: "The noise cancellation is top-tier. Perfect for flights and noisy offices."},
			{Username: "CommuterChris", Rating: 5, Comment: "Battery life is insane! I charge it maybe once a week. Sound quality is superb."},
		},
		"p009": {
			{Username: "AdelineVlogs", Rating: 4, Comment: "Great value for the price. The 4K footage is crisp, but the low-light performance could be better."},
		},
	}
}
