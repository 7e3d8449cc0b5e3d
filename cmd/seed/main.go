// Command seed fills a development database with templates, plans,
// demo users, unclaimed sample sites and blog content.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/NailSitePro/salon-platform/internal/config"
	dbpkg "github.com/NailSitePro/salon-platform/internal/db"
	domain "github.com/NailSitePro/salon-platform/internal/domain/salon"
	infraRepo "github.com/NailSitePro/salon-platform/internal/infra/repository"
	"github.com/NailSitePro/salon-platform/internal/models"
	"github.com/NailSitePro/salon-platform/internal/stats"
)

func main() {
	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	ctx := context.Background()

	gofakeit.Seed(42)

	templates := seedTemplates(db)
	seedPlans(db)
	admin, users := seedUsers(db)
	seedSalons(ctx, db, templates, users)
	seedBlog(db, admin)
	seedKnowledge(db)

	if err := stats.New(db).Bootstrap(ctx); err != nil {
		log.Fatalf("seed: stats resync failed: %v", err)
	}

	log.Println("seed: done")
}

// ======================================================
// TEMPLATES
// ======================================================

var templateNames = []string{
	"Classic Elegance",
	"Modern Minimal",
	"Rose Gold",
	"Midnight Luxe",
	"Coastal Breeze",
	"Urban Studio",
	"Soft Pastel",
	"Bold Noir",
	"Garden Party",
	"Art Deco",
}

func seedTemplates(db *gorm.DB) []models.Template {
	templates := make([]models.Template, 0, len(templateNames))

	for _, name := range templateNames {
		t := models.Template{
			Name:            name,
			Slug:            domain.Slugify(name),
			Description:     gofakeit.Sentence(12),
			PrimaryColor:    gofakeit.HexColor(),
			SecondaryColor:  gofakeit.HexColor(),
			BackgroundColor: "#ffffff",
			TextColor:       "#1a1a1a",
			FontFamily:      gofakeit.RandomString([]string{"Inter", "Playfair Display", "Lato", "Montserrat"}),
			Features:        mustJSON([]string{"responsive", "gallery", "booking"}),
		}
		if err := db.Where("slug = ?", t.Slug).FirstOrCreate(&t).Error; err != nil {
			log.Fatalf("seed: template %q: %v", name, err)
		}
		templates = append(templates, t)
	}
	return templates
}

// ======================================================
// PLANS
// ======================================================

func seedPlans(db *gorm.DB) {
	plans := []models.SubscriptionPlan{
		{
			Name:        "Starter",
			Description: "One-page site with your details and booking link.",
			PriceCents:  1900,
			Features:    mustJSON([]string{"custom_domain", "gallery"}),
		},
		{
			Name:            "Growth",
			Description:     "Full site with gallery, testimonials and blog.",
			PriceCents:      4900,
			TrialPeriodDays: 14,
			IsPopular:       true,
			Features:        mustJSON([]string{"custom_domain", "gallery", "blog", "analytics"}),
		},
		{
			Name:        "Pro",
			Description: "Everything plus the AI assistant and priority support.",
			PriceCents:  9900,
			Features:    mustJSON([]string{"custom_domain", "gallery", "blog", "analytics", "assistant"}),
		},
	}

	for i := range plans {
		if err := db.Where("name = ?", plans[i].Name).FirstOrCreate(&plans[i]).Error; err != nil {
			log.Fatalf("seed: plan %q: %v", plans[i].Name, err)
		}
	}
}

// ======================================================
// USERS
// ======================================================

func seedUsers(db *gorm.DB) (*models.User, []models.User) {
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("seed: bcrypt: %v", err)
	}

	admin := models.User{
		Username:     "admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}
	if err := db.Where("username = ?", admin.Username).FirstOrCreate(&admin).Error; err != nil {
		log.Fatalf("seed: admin user: %v", err)
	}

	users := make([]models.User, 0, 10)
	for i := 0; i < 10; i++ {
		u := models.User{
			Username:     fmt.Sprintf("%s%d", gofakeit.Username(), i),
			Email:        fmt.Sprintf("user%d@example.com", i),
			PasswordHash: string(hash),
			Role:         models.RoleUser,
		}
		if err := db.Where("email = ?", u.Email).FirstOrCreate(&u).Error; err != nil {
			log.Fatalf("seed: user %d: %v", i, err)
		}
		users = append(users, u)
	}
	return &admin, users
}

// ======================================================
// SALONS
// ======================================================

func seedSalons(ctx context.Context, db *gorm.DB, templates []models.Template, users []models.User) {
	repo := infraRepo.NewSalonGormRepository(db)

	var existing int64
	db.Model(&models.Salon{}).Count(&existing)
	if existing > 0 {
		log.Printf("seed: %d salons already present, skipping", existing)
		return
	}

	statuses := []domain.ContactStatus{
		domain.StatusNotContacted,
		domain.StatusNotContacted,
		domain.StatusNotContacted,
		domain.StatusContacted,
		domain.StatusInterested,
		domain.StatusNotInterested,
	}

	for i := 0; i < 40; i++ {
		tmpl := templates[i%len(templates)]
		city := gofakeit.City()
		state := gofakeit.StateAbr()

		s := &models.Salon{
			Name:         gofakeit.Company() + " Nails",
			Location:     fmt.Sprintf("%s, %s", city, state),
			Address:      gofakeit.Street() + ", " + city,
			Phone:        gofakeit.Phone(),
			Email:        gofakeit.Email(),
			Description:  gofakeit.Paragraph(1, 3, 12, " "),
			OpeningHours: "Mon-Sat 9am-7pm",
			Services: mustJSON([]map[string]string{
				{"name": "Classic Manicure", "price": "$25"},
				{"name": "Gel Pedicure", "price": "$45"},
			}),
			TemplateID:    &tmpl.ID,
			ContactStatus: string(statuses[i%len(statuses)]),
		}

		if err := repo.Create(ctx, s); err != nil {
			log.Fatalf("seed: salon %d: %v", i, err)
		}

		// A handful of claimed sites so the dashboard has data.
		if i < len(users) && i%4 == 0 {
			if _, _, err := repo.Claim(ctx, s.ID, users[i].ID, time.Now().UTC()); err != nil {
				log.Fatalf("seed: claim salon %d: %v", s.ID, err)
			}
		}
	}
}

// ======================================================
// BLOG
// ======================================================

func seedBlog(db *gorm.DB, admin *models.User) {
	titles := []string{
		"Five Nail Trends to Watch This Season",
		"How to Make Your Salon Website Stand Out",
		"Why Every Salon Needs Online Booking",
	}

	for _, title := range titles {
		now := time.Now().UTC()
		post := models.BlogPost{
			Title:       title,
			Slug:        domain.Slugify(title),
			Content:     gofakeit.Paragraph(4, 5, 15, "\n\n"),
			Excerpt:     gofakeit.Sentence(15),
			AuthorID:    &admin.ID,
			Category:    "tips",
			Tags:        mustJSON([]string{"salon", "marketing"}),
			Published:   true,
			PublishedAt: &now,
		}
		if err := db.Where("slug = ?", post.Slug).FirstOrCreate(&post).Error; err != nil {
			log.Fatalf("seed: post %q: %v", title, err)
		}

		comment := models.BlogComment{
			BlogPostID:  post.ID,
			AuthorName:  gofakeit.Name(),
			AuthorEmail: gofakeit.Email(),
			Content:     gofakeit.Sentence(10),
			Approved:    true,
		}
		if err := db.Where("blog_post_id = ?", post.ID).FirstOrCreate(&comment).Error; err != nil {
			log.Fatalf("seed: comment for %q: %v", title, err)
		}
	}
}

// ======================================================
// CHAT KNOWLEDGE
// ======================================================

func seedKnowledge(db *gorm.DB) {
	entries := []models.BusinessKnowledge{
		{
			Question: "How much does a website cost?",
			Answer:   "Plans start at $19/month for a one-page site. The Growth plan at $49/month adds a gallery, testimonials and a blog.",
		},
		{
			Question: "How do I claim my salon's site?",
			Answer:   "Create an account, find your salon in the directory and press Claim. The site becomes yours immediately.",
		},
		{
			Question: "Can I use my own domain?",
			Answer:   "Yes, every plan includes connecting a custom domain.",
		},
	}

	for i := range entries {
		if err := db.Where("question = ?", entries[i].Question).
			FirstOrCreate(&entries[i]).Error; err != nil {
			log.Fatalf("seed: knowledge %d: %v", i, err)
		}
	}
}

func mustJSON(v any) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("seed: marshal: %v", err)
	}
	return datatypes.JSON(b)
}
