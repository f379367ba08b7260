package seeders

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Kantor012/Product-Catalog/app/models"
	"github.com/Kantor012/Product-Catalog/pkg/auth"
	"github.com/Kantor012/Product-Catalog/pkg/collection"
)

func init() {
	Register("catalog", SeedCatalog)
}

const productsPerCategory = 8

// categoryTemplate drives the generated demo data for one category.
type categoryTemplate struct {
	name     string
	brands   []string
	models   []string
	minPrice float64
	maxPrice float64
	details  map[string][]string
}

var templates = []categoryTemplate{
	{
		name:     "Smartphones",
		brands:   []string{"Samsung", "Apple", "Google", "Xiaomi", "OnePlus"},
		models:   []string{"Galaxy S25 Ultra", "iPhone 17 Pro", "Pixel 9 Pro", "13 Pro", "Mi 12"},
		minPrice: 600, maxPrice: 1800,
		details: map[string][]string{
			"RAM (GB)":         {"8", "12", "16"},
			"Storage (GB)":     {"128", "256", "512", "1024"},
			"Display (inches)": {"6.1", "6.5", "6.7", "6.8"},
			"Operating System": {"Android", "iOS"},
			"Battery (mAh)":    {"4500", "5000", "5500"},
			"Color":            {"Black", "White", "Titanium", "Blue"},
		},
	},
	{
		name:     "TVs",
		brands:   []string{"LG", "Samsung", "Sony", "Philips", "TCL"},
		models:   []string{"OLED65G4", "Neo QLED QN55D", "Bravia XR A95L", "OLED907", "C845 MiniLED"},
		minPrice: 700, maxPrice: 6000,
		details: map[string][]string{
			"Diagonal (inches)": {"55", "65", "77", "83"},
			"Resolution":        {"4K UHD", "8K"},
			"Panel Technology":  {"OLED evo", "QLED", "MiniLED", "QD-OLED"},
			"Refresh Rate (Hz)": {"100", "120", "144"},
			"Smart TV":          {"webOS", "Tizen", "Google TV"},
		},
	},
	{
		name:     "Laptops",
		brands:   []string{"Dell", "HP", "Lenovo", "Apple", "Asus"},
		models:   []string{"XPS 13", "Spectre x360", "ThinkPad X1 Carbon", "MacBook Pro", "ZenBook 14"},
		minPrice: 800, maxPrice: 3500,
		details: map[string][]string{
			"RAM (GB)":              {"8", "16", "32"},
			"Storage (GB)":          {"256", "512", "1024", "2048"},
			"Display Size (inches)": {"13.3", "14.0", "15.6"},
			"Processor":             {"Intel Core i5", "Intel Core i7", "AMD Ryzen 5", "AMD Ryzen 7"},
			"Operating System":      {"Windows 11", "macOS", "Linux"},
		},
	},
	{
		name:     "Tablets",
		brands:   []string{"Apple", "Samsung", "Microsoft", "Lenovo", "Huawei"},
		models:   []string{"iPad Pro", "Galaxy Tab S8", "Surface Pro 9", "Tab P11 Plus", "MatePad Pro"},
		minPrice: 300, maxPrice: 2000,
		details: map[string][]string{
			"RAM (GB)":              {"4", "8", "16"},
			"Storage (GB)":          {"64", "128", "256", "512"},
			"Display Size (inches)": {"10.2", "11.0", "12.9"},
			"Operating System":      {"iPadOS", "Android", "Windows 11", "HarmonyOS"},
			"Stylus Support":        {"Yes", "No"},
		},
	},
	{
		name:     "Smartwatches",
		brands:   []string{"Apple", "Samsung", "Garmin", "Fossil", "Huawei"},
		models:   []string{"Apple Watch Series 7", "Galaxy Watch 6", "Fenix 7 Solar", "Gen 6 Hybrid HR", "Watch GT 3 Pro"},
		minPrice: 200, maxPrice: 1500,
		details: map[string][]string{
			"Display Size (inches)": {"1.2", "1.4", "1.5"},
			"Battery Life (days)":   {"1", "2", "5", "14"},
			"Water Resistance":      {"IP68", "5 ATM", "None"},
			"Operating System":      {"watchOS", "Wear OS", "Garmin OS", "LiteOS"},
		},
	},
	{
		name:     "Headphones",
		brands:   []string{"Sony", "Bose", "Apple", "Sennheiser", "Jabra"},
		models:   []string{"WH-1000XM5", "QuietComfort 45", "AirPods Max", "Momentum 4", "Elite 85h"},
		minPrice: 100, maxPrice: 600,
		details: map[string][]string{
			"Battery Life (hours)": {"20", "30", "40", "60"},
			"Noise Cancellation":   {"Active", "Passive", "Adaptive"},
			"Connectivity":         {"Bluetooth", "Wired", "USB-C"},
			"Color":                {"Black", "White", "Silver", "Blue"},
		},
	},
	{
		name:     "Smart Home Devices",
		brands:   []string{"Amazon", "Google", "Apple", "Philips Hue", "TP-Link"},
		models:   []string{"Echo Dot 5th Gen", "Nest Hub 2nd Gen", "HomePod mini", "Hue White and Color Ambiance", "Kasa Smart Plug"},
		minPrice: 20, maxPrice: 300,
		details: map[string][]string{
			"Connectivity":    {"Wi-Fi", "Bluetooth", "Zigbee"},
			"Compatibility":   {"Alexa", "Google Assistant", "Apple HomeKit"},
			"Voice Assistant": {"Built-in", "External"},
			"Power Source":    {"Battery", "AC Adapter"},
		},
	},
}

var reviewAuthors = []string{"John D.", "Jane S.", "Mike P.", "Emily R.", "Chris B.", "Sarah W.", "Tom H."}

var reviewComments = map[int][]string{
	5: {
		"Amazing product, works perfectly!",
		"Excellent quality, highly recommended!",
		"Five stars! Would buy again.",
		"Exceeded my expectations. Truly a fantastic item.",
	},
	4: {
		"Good value for the price.",
		"Great design and very user-friendly.",
		"A solid product, works well with only minor issues.",
	},
	3: {
		"Not bad, but could be better.",
		"It's okay, does the job.",
		"Average quality. You get what you pay for.",
	},
	2: {
		"I'm very disappointed with this.",
		"Struggled to get it to work properly.",
		"Wouldn't buy this again. Poor build quality.",
	},
	1: {
		"Waste of money. Would not recommend.",
		"Broke after just a week of use. Terrible.",
		"Completely useless. Do not buy.",
	},
}

// SeedCatalog wipes and repopulates the catalog with demo categories,
// products (with generated reviews and recomputed aggregates), the initial
// recently-added entries, and a verified root administrator
// (mail@example.com / root).
func SeedCatalog(ctx context.Context, db *mongo.Database) error {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for _, name := range []string{"products", "categories", "recentlyAdded", "users"} {
		if err := db.Collection(name).Drop(ctx); err != nil {
			return fmt.Errorf("drop %s: %w", name, err)
		}
	}

	var products []interface{}
	for _, tpl := range templates {
		cat := models.Category{ID: primitive.NewObjectID(), Name: tpl.name}
		if _, err := db.Collection("categories").InsertOne(ctx, cat); err != nil {
			return fmt.Errorf("insert category %s: %w", tpl.name, err)
		}

		for i := 1; i <= productsPerCategory; i++ {
			products = append(products, generateProduct(rng, tpl, cat.ID, i))
		}
	}
	if _, err := db.Collection("products").InsertMany(ctx, products); err != nil {
		return fmt.Errorf("insert products: %w", err)
	}

	// Feed the four newest products into the recently-added collection.
	cur, err := db.Collection("products").Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("find products: %w", err)
	}
	var all []models.Product
	if err := cur.All(ctx, &all); err != nil {
		return fmt.Errorf("decode products: %w", err)
	}
	var recent []interface{}
	for i := 0; i < 4 && i < len(all); i++ {
		recent = append(recent, models.RecentlyAddedEntry{
			Product:   all[i].ID,
			CreatedAt: all[i].CreatedAt,
		})
	}
	if len(recent) > 0 {
		if _, err := db.Collection("recentlyAdded").InsertMany(ctx, recent); err != nil {
			return fmt.Errorf("insert recently added: %w", err)
		}
	}

	hashed, err := auth.HashPassword("root")
	if err != nil {
		return fmt.Errorf("hash root password: %w", err)
	}
	root := models.User{
		Name:       "root",
		Email:      "mail@example.com",
		Password:   hashed,
		IsAdmin:    true,
		IsVerified: true,
	}
	if _, err := db.Collection("users").InsertOne(ctx, root); err != nil {
		return fmt.Errorf("insert root user: %w", err)
	}

	fmt.Print("\nLogin credentials:\n  Email: mail@example.com\n  Password: root\n")
	return nil
}

func generateProduct(rng *rand.Rand, tpl categoryTemplate, categoryID primitive.ObjectID, n int) models.Product {
	brand := pick(rng, tpl.brands)
	name := fmt.Sprintf("%s %s v%d", brand, pick(rng, tpl.models), n)
	price := round2(tpl.minPrice + rng.Float64()*(tpl.maxPrice-tpl.minPrice))

	details := map[string]string{}
	for key, values := range tpl.details {
		details[key] = pick(rng, values)
	}

	reviews := generateReviews(rng)
	rating := round2(collection.Average(reviews, func(r models.Review) float64 { return r.Rating }))

	isPromotional := rng.Float64() > 0.9
	var promoPrice *float64
	if isPromotional {
		p := round2(price * (rng.Float64()*0.5 + 0.5))
		promoPrice = &p
	}

	return models.Product{
		ID:               primitive.NewObjectID(),
		Name:             name,
		Price:            price,
		Description:      fmt.Sprintf("Best quality %s %s. An excellent choice for demanding customers.", tpl.name, name),
		ImageURL:         models.PlaceholderImageURL(name, tpl.name),
		Category:         categoryID,
		Details:          details,
		IsPromotional:    isPromotional,
		PromotionalPrice: promoPrice,
		Reviews:          reviews,
		Rating:           rating,
		NumReviews:       len(reviews),
		CreatedAt:        time.Now().UTC(),
		SearchableText:   models.SearchableString(details),
	}
}

func generateReviews(rng *rand.Rand) []models.Review {
	n := rng.Intn(20) + 3 // 3 to 22 reviews
	reviews := make([]models.Review, 0, n)
	for i := 0; i < n; i++ {
		rating := rng.Intn(5) + 1
		reviews = append(reviews, models.Review{
			ID:      primitive.NewObjectID(),
			Name:    pick(rng, reviewAuthors),
			Rating:  float64(rating),
			Comment: pick(rng, reviewComments[rating]),
			User:    primitive.NewObjectID(),
			// Random moment in the last 30 days.
			CreatedAt: time.Now().UTC().Add(-time.Duration(rng.Int63n(int64(30 * 24 * time.Hour)))),
		})
	}
	return reviews
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
