package cmd

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/hatim/makmanager/app/configs"
	"github.com/hatim/makmanager/app/db/seeders"
	"github.com/hatim/makmanager/app/models/migrations"
	"github.com/hatim/makmanager/app/repositories"
	"github.com/hatim/makmanager/app/services"
)

func RunCli() {
	cmd := &cli.Command{
		Commands: []*cli.Command{
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Println("✅ Migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Seed the admin account and a sample catalog",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}
					if err := seeders.DBSeed(db); err != nil {
						return err
					}
					log.Println("✅ Seeding complete")
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate new session and CSRF keys for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintSessionKeys(); err != nil {
						return err
					}
					log.Println("✅ Key generation complete. Please copy the keys to your .env file.")
					return nil
				},
			},
			{
				Name:  "import-prices",
				Usage: "Merge a distributor price sheet (CSV) into the catalog",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Usage: "path to the CSV price sheet", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := configs.OpenConnection()
					if err != nil {
						return err
					}

					file, err := os.Open(c.String("file"))
					if err != nil {
						return err
					}
					defer file.Close()

					catalogSvc := services.NewCatalogService(repositories.NewStore(db))
					updated, err := catalogSvc.ImportPrices(ctx, file)
					if err != nil {
						return err
					}
					log.Printf("✅ Import complete. Matched & updated %d variants.", updated)
					return nil
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
