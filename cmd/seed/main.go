package main

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kontor/kontor-backend/db"
	"github.com/kontor/kontor-backend/internal/config"
	"github.com/kontor/kontor-backend/internal/domain"
	"github.com/kontor/kontor-backend/internal/service"
	"github.com/kontor/kontor-backend/internal/util"
	"github.com/kontor/kontor-backend/internal/ws"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/kontor/kontor-backend/internal/repository/postgres"
)

type seedEntry struct {
	txType      domain.TransactionType
	amount      string
	description string
	daysAgo     int
}

// Demo data covering both transaction types across the current and the
// previous month, so the default filter and summary views have something
// to show.
var demoEntries = []seedEntry{
	{domain.TransactionTypeIncome, "2500.00", "Monthly salary", 0},
	{domain.TransactionTypeExpense, "54.30", "Groceries", 0},
	{domain.TransactionTypeExpense, "12.50", "Lunch", 1},
	{domain.TransactionTypeExpense, "89.99", "Electricity bill", 3},
	{domain.TransactionTypeIncome, "150.00", "Freelance payment", 5},
	{domain.TransactionTypeExpense, "32.00", "Fuel", 7},
	{domain.TransactionTypeExpense, "18.75", "Pharmacy", 10},
	{domain.TransactionTypeIncome, "2500.00", "Monthly salary", 30},
	{domain.TransactionTypeExpense, "640.00", "Rent", 30},
	{domain.TransactionTypeExpense, "47.20", "Groceries", 33},
	{domain.TransactionTypeExpense, "25.00", "Streaming subscriptions", 35},
	{domain.TransactionTypeIncome, "75.50", "Second-hand sale", 38},
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := db.Migrate(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	transactionRepo := postgres.NewTransactionRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	resolver := service.NewCategoryResolver(categoryRepo)
	summaries := service.NewSummaryService(transactionRepo)
	ledger := service.NewLedgerService(transactionRepo, resolver, summaries, &ws.NoOpPublisher{})

	today := util.Today()
	for _, entry := range demoEntries {
		amount, err := decimal.NewFromString(entry.amount)
		if err != nil {
			log.Fatal().Err(err).Str("amount", entry.amount).Msg("Invalid seed amount")
		}

		created, err := ledger.RecordTransaction(ctx, service.RecordTransactionInput{
			Type:        entry.txType,
			Amount:      amount,
			Description: entry.description,
			Date:        today.AddDate(0, 0, -entry.daysAgo),
		})
		if err != nil {
			log.Fatal().Err(err).Str("description", entry.description).Msg("Failed to seed transaction")
		}

		log.Info().
			Int32("transaction_id", created.ID).
			Str("date", created.Date.Format(time.DateOnly)).
			Msg("Seeded transaction")
	}

	log.Info().Int("count", len(demoEntries)).Msg("Demo data loaded")
}
