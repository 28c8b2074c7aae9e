// Seeds a development database with demo content: settings, categories,
// tags, a handful of posts and a month of analytics samples.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/metalcycle/internal/config"
	"github.com/metalcycle/internal/db"
	"github.com/metalcycle/internal/service"
)

func main() {
	cfg := config.Load()

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.EnsureAdmin("admin@metalcycle.example", "admin123"); err != nil {
		log.Fatalf("failed to create admin: %v", err)
	}

	settings := service.NewSettingsService(db.DB)
	if _, err := settings.Update(service.SettingsInput{
		CompanyName:    "MetalCycle",
		Description:    "Responsible metal recycling for homes and industry.",
		PrimaryColor:   "#16a34a",
		SecondaryColor: "#0f172a",
		ContactEmail:   "hello@metalcycle.example",
		ContactPhone:   "+1 555 0100",
		Address:        "14 Scrapyard Road",
	}); err != nil {
		log.Fatalf("failed to seed settings: %v", err)
	}

	categories := service.NewCategoryService(db.DB)
	tags := service.NewTagService(db.DB)
	posts := service.NewPostService(db.DB)
	pages := service.NewPageService(db.DB)

	var admin db.User
	if err := db.DB.Where("role = ?", db.RoleAdmin).First(&admin).Error; err != nil {
		log.Fatalf("failed to load admin: %v", err)
	}

	news, err := categories.Create("Company news", "", "Announcements and milestones")
	if err != nil {
		log.Printf("seed category: %v", err)
	}
	guides, err := categories.Create("Recycling guides", "", "How to sort and prepare scrap")
	if err != nil {
		log.Printf("seed category: %v", err)
	}

	var tagIDs []uint
	for _, name := range []string{"Copper", "Aluminium", "Steel", "Sustainability"} {
		tag, err := tags.Create(name, "")
		if err != nil {
			log.Printf("seed tag %s: %v", name, err)
			continue
		}
		tagIDs = append(tagIDs, tag.ID)
	}

	demoPosts := []service.PostInput{
		{
			Title:   "Why copper is the most valuable scrap in your garage",
			Summary: "Copper prices keep climbing. Here is what to look for.",
			Content: "<h2>Start with cables</h2><p>Old appliance cables hide clean copper.</p>",
			Status:  db.PostStatusPublished,
		},
		{
			Title:   "Our new sorting line is live",
			Summary: "Throughput doubled with the new eddy current separator.",
			Content: "<p>The upgrade shortens drop-off waits considerably.</p>",
			Status:  db.PostStatusPublished,
		},
		{
			Title:   "Preparing aluminium for drop-off",
			Summary: "Clean aluminium pays better. A quick checklist.",
			Content: "<p>Remove plastic, rubber and steel screws before weighing.</p>",
			Status:  db.PostStatusDraft,
		},
	}

	for i, input := range demoPosts {
		input.UserID = admin.ID
		if len(tagIDs) > 0 {
			input.TagIDs = tagIDs[:1+i%len(tagIDs)]
		}
		if i%2 == 0 && guides != nil {
			input.CategoryID = &guides.ID
		} else if news != nil {
			input.CategoryID = &news.ID
		}
		if _, err := posts.Create(input); err != nil {
			log.Printf("seed post %q: %v", input.Title, err)
		}
	}

	if _, err := pages.Save("about", "About Us",
		"## Who we are\n\nFamily-run metal recycling since 1998."); err != nil {
		log.Printf("seed about page: %v", err)
	}
	if _, err := pages.Save("services", "Our Services",
		"- Scrap pickup\n- Industrial dismantling\n- Certified weighing"); err != nil {
		log.Printf("seed services page: %v", err)
	}

	analytics := service.NewAnalyticsService(db.DB)
	for i := 30; i >= 1; i-- {
		views := uint64(80 + rand.Intn(120))
		visitors := views / 2
		if _, err := analytics.AddSample(service.SampleInput{
			Date:           time.Now().AddDate(0, 0, -i),
			PageViews:      views,
			UniqueVisitors: visitors,
			Source:         "seed",
		}); err != nil {
			log.Printf("seed sample: %v", err)
		}
	}

	fmt.Println("seed complete")
	fmt.Println("admin login: admin@metalcycle.example / admin123")
}
