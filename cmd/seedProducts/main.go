package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"warehouse/frontend/products"
	"warehouse/infrastructure/audit"
	"warehouse/infrastructure/config"
	"warehouse/infrastructure/productstore"
	"warehouse/infrastructure/sqlite"
	"warehouse/models"
	"warehouse/pkg/logger"
)

const seedActor = "seed"

// sampleProducts is loaded when no CSV file is given.
const sampleProducts = `name,sku,location,price,quantity
Pallet Wrap 500mm,PW-500,Aisle 1 Bay 2,18.50,40
Packing Tape 48mm,PT-48,Aisle 1 Bay 3,2.35,320
Carton 400x300x300,CT-433,Aisle 2 Bay 1,1.10,1200
Carton 600x400x400,CT-644,Aisle 2 Bay 1,1.85,650
Bubble Wrap Roll,BW-1500,Aisle 1 Bay 4,24.00,18
Thermal Labels 100x150,TL-100150,Aisle 3 Bay 1,14.90,75
Barcode Scanner,BS-200,Office,189.00,3
Hand Pallet Truck,HPT-2500,Dock,420.00,2
Stretch Hood,SH-1200,Aisle 1 Bay 2,,0
Void Fill Paper,VF-PAPER,Aisle 2 Bay 4,32.00,12
Safety Gloves L,SG-L,Aisle 4 Bay 1,3.20,140
Safety Gloves M,SG-M,Aisle 4 Bay 1,3.20,
`

func main() {
	file := flag.String("file", "", "CSV file with name,sku,location,price,quantity columns")
	flag.Parse()

	log, err := logger.New(logger.Config{Level: "info", Development: true})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalw("load config", "err", err)
	}

	var src io.Reader = strings.NewReader(sampleProducts)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			log.Fatalw("open seed file", "file", *file, "err", err)
		}
		defer f.Close()
		src = f
	}
	items, err := parseSeedCSV(src)
	if err != nil {
		log.Fatalw("parse seed products", "err", err)
	}

	db, err := sqlite.OpenDB(cfg.SQLitePath)
	if err != nil {
		log.Fatalw("open db", "path", cfg.SQLitePath, "err", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := sqlite.ApplyEmbeddedMigrations(ctx, db); err != nil {
		log.Fatalw("apply migrations", "err", err)
	}

	n, err := seedProducts(ctx, productstore.NewRepository(db, audit.NewService()), items)
	if err != nil {
		log.Fatalw("seed products", "seeded", n, "err", err)
	}
	log.Infow("seeding completed successfully", "products", n, "db", cfg.SQLitePath)
}

// parseSeedCSV reads products with the same form rules as the add dialog:
// blank cells become null fields.
func parseSeedCSV(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	cell := func(row []string, name string) string {
		i, ok := columns[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	items := make([]models.Product, 0, len(rows)-1)
	for line, row := range rows[1:] {
		form := products.ProductForm{
			Name:     cell(row, "name"),
			SKU:      cell(row, "sku"),
			Location: cell(row, "location"),
			Price:    cell(row, "price"),
			Quantity: cell(row, "quantity"),
		}
		p, err := form.Product(0)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line+2, err)
		}
		items = append(items, p)
	}
	return items, nil
}

func seedProducts(ctx context.Context, repo *productstore.Repository, items []models.Product) (int, error) {
	for i, p := range items {
		if _, err := repo.Create(ctx, seedActor, p); err != nil {
			return i, fmt.Errorf("create %q: %w", p.NameOrEmpty(), err)
		}
	}
	return len(items), nil
}
