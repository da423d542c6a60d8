package main

import (
	"context"
	"time"

	"spicetrade-backend/internal/config"
	"spicetrade-backend/internal/database"
	"spicetrade-backend/internal/models"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Seeds a handful of caterers and bills for local development. One of the
// bills is due in exactly two days, so the active reminder list has
// something to show right away.
func main() {
	if err := godotenv.Load(); err != nil {
		zlog.Info().Msg("No .env file found")
	}

	cfg := config.New()

	db, err := database.NewConnection(cfg)
	if err != nil {
		zlog.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		zlog.Fatal().Err(err).Msg("Failed to run migrations")
	}

	ctx := context.Background()

	caterers := []models.CreateCatererRequest{
		{Name: "Malabar Coast Catering", Phone: "+91 484 223 1100", Email: "orders@malabarcoast.example", Address: "12 Spice Market Rd, Kochi"},
		{Name: "Golden Saffron Events", Phone: "+91 22 4411 8800", Email: "billing@goldensaffron.example", Address: "3 Crawford Lane, Mumbai"},
		{Name: "Cardamom Hills Kitchen", Phone: "+91 486 520 4475", Email: "accounts@cardamomhills.example", Address: "Hill View, Thekkady"},
	}

	catererIDs := make([]int, 0, len(caterers))
	for _, c := range caterers {
		var id int
		err := db.Pool.QueryRow(ctx,
			`INSERT INTO caterers (name, phone, email, address) VALUES ($1, $2, $3, $4) RETURNING id`,
			c.Name, c.Phone, c.Email, c.Address,
		).Scan(&id)
		if err != nil {
			zlog.Fatal().Err(err).Str("caterer", c.Name).Msg("Failed to seed caterer")
		}
		catererIDs = append(catererIDs, id)
		zlog.Info().Int("id", id).Str("name", c.Name).Msg("Seeded caterer")
	}

	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	due := func(days int) *time.Time {
		t := today.AddDate(0, 0, days)
		return &t
	}

	bills := []struct {
		bill  models.Bill
		notes string
	}{
		{models.Bill{BillNumber: "SPC-2024-0041", CatererID: catererIDs[0], Amount: decimal.NewFromFloat(18750.00), DueDate: due(2)}, "Black pepper and turmeric consignment"},
		{models.Bill{BillNumber: "SPC-2024-0042", CatererID: catererIDs[1], Amount: decimal.NewFromFloat(9400.50), DueDate: due(5)}, "Saffron order, monthly"},
		{models.Bill{BillNumber: "SPC-2024-0043", CatererID: catererIDs[2], Amount: decimal.NewFromFloat(27300.00), DueDate: due(-3)}, "Cardamom bulk purchase, overdue"},
		{models.Bill{BillNumber: "SPC-2024-0044", CatererID: catererIDs[0], Amount: decimal.NewFromFloat(5125.75), DueDate: nil}, ""},
	}

	for _, b := range bills {
		created, err := db.IssueBill(ctx, &b.bill, b.notes)
		if err != nil {
			zlog.Fatal().Err(err).Str("bill", b.bill.BillNumber).Msg("Failed to seed bill")
		}
		event := zlog.Info().Str("bill", b.bill.BillNumber)
		if created != nil {
			event = event.Str("reminder", created.ID.String()).Str("status", created.Status)
		}
		event.Msg("Seeded bill")
	}

	zlog.Info().Msg("Seeding complete")
}
