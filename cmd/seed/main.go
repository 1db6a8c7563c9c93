// Command seed populates the drill catalog with generated fixture data for
// local development and demos.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"drillhub/workout-app/internal/config"
	"drillhub/workout-app/internal/domain"
	repoMongo "drillhub/workout-app/internal/repository/mongo"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/sirupsen/logrus"
)

func main() {
	perCategory := flag.Int("per-category", 12, "number of drills to create per category")
	seed := flag.Int64("seed", 0, "gofakeit seed, 0 for random")
	flag.Parse()

	logger := logrus.New()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.WithError(err).Fatal("could not load config")
	}

	dbClient, err := repoMongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		_ = repoMongo.DisconnectDB(dbClient)
	}()

	faker := gofakeit.New(*seed)
	drillRepo := repoMongo.NewMongoDrillRepository(dbClient.Database(cfg.Database.Name))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var created int
	for _, category := range domain.DrillCategories {
		for i := 0; i < *perCategory; i++ {
			drill := &domain.Drill{
				Name:        fmt.Sprintf("%s %s", faker.AdjectiveDescriptive(), faker.VerbAction()),
				Description: faker.Sentence(12),
				Category:    category,
				Difficulty:  faker.RandomString(domain.Difficulties),
				Intensity:   faker.RandomString(domain.Intensities),
			}
			if _, err := drillRepo.Create(ctx, drill); err != nil {
				logger.WithError(err).WithField("category", category).Fatal("failed to create drill")
			}
			created++
		}
	}

	logger.WithField("drills", created).Info("catalog seeded")
}
