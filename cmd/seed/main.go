// seed inserts sample suppliers and parts for local development.
// Idempotent: skips inserts when the first seed supplier already exists.
package main

import (
	"time"

	"supplier-directory/internal/model"
	"supplier-directory/internal/store"
	"supplier-directory/pkg/config"
	"supplier-directory/pkg/database"
	"supplier-directory/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(cfg)
	log := logger.GetLogger()

	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}

	db := database.GetDB()

	var count int64
	db.Model(&model.Supplier{}).Where("email = ?", "contact@techflow.com").Count(&count)
	if count > 0 {
		log.Info("Seed data already present, nothing to do")
		return
	}

	st := store.New(db)
	for i := range seedSuppliers {
		if err := st.Create(&seedSuppliers[i]); err != nil {
			log.Fatal("Failed to seed supplier",
				zap.String("name", seedSuppliers[i].Name),
				zap.Error(err))
		}
		if seedLastOrders[i] != "" {
			t, _ := time.Parse("2006-01-02", seedLastOrders[i])
			seedSuppliers[i].LastOrder = &t
			if err := st.Update(&seedSuppliers[i]); err != nil {
				log.Fatal("Failed to set last order",
					zap.String("name", seedSuppliers[i].Name),
					zap.Error(err))
			}
		}
	}

	// Parts reference suppliers by their seeded IDs
	parts := seedParts(seedSuppliers)
	if err := db.Create(&parts).Error; err != nil {
		log.Fatal("Failed to seed parts", zap.Error(err))
	}

	log.Info("Seed data inserted",
		zap.Int("suppliers", len(seedSuppliers)),
		zap.Int("parts", len(parts)))
}

// seedLastOrders holds the last order date per seed supplier, parallel to
// seedSuppliers. Last orders go through Update because Create always
// starts a supplier without one.
var seedLastOrders = []string{
	"2024-01-15", "2024-01-12", "2024-01-08", "2024-01-14", "2023-12-20", "2024-01-10",
}

var seedSuppliers = []model.Supplier{
	{
		Name:         "TechFlow Solutions",
		Email:        "contact@techflow.com",
		Phone:        "+1 (555) 123-4567",
		Address:      "123 Innovation Drive",
		City:         "San Francisco",
		Country:      "USA",
		Category:     "Software / IT",
		Status:       model.StatusActive,
		Tags:         model.StringList{"electronics", "software", "fast-delivery"},
		PaymentTerms: "Net 30",
		Primary:      model.Contact{Name: "Sarah Johnson", Email: "sarah.johnson@techflow.com", Phone: "+1 (555) 123-4568"},
		Technical:    model.Contact{Name: "Raj Patel", Email: "raj.patel@techflow.com"},
		Rating:       4.8,
		TotalOrders:  156,
		TotalValue:   2450000,
		Website:      "https://www.techflow.com",
		TaxID:        "US123456789",
	},
	{
		Name:         "Global Manufacturing Co.",
		Email:        "orders@globalmanuf.com",
		Phone:        "+1 (555) 987-6543",
		Address:      "456 Industrial Blvd",
		City:         "Detroit",
		Country:      "USA",
		Category:     "Equipment Mfg.",
		Status:       model.StatusActive,
		Tags:         model.StringList{"automotive", "oem-parts"},
		PaymentTerms: "Net 45",
		Primary:      model.Contact{Name: "Michael Chen", Email: "michael.chen@globalmanuf.com", Phone: "+1 (555) 987-6544"},
		Parts:        model.Contact{Name: "Dana Brooks", Email: "parts@globalmanuf.com"},
		Rating:       4.5,
		TotalOrders:  89,
		TotalValue:   1890000,
		Website:      "https://www.globalmanuf.com",
		TaxID:        "US987654321",
	},
	{
		Name:         "EcoSupply Partners",
		Email:        "info@ecosupply.com",
		Phone:        "+1 (555) 456-7890",
		Address:      "789 Green Street",
		City:         "Portland",
		Country:      "USA",
		Category:     "Supplies - General",
		Status:       model.StatusPending,
		Tags:         model.StringList{"sustainable", "packaging"},
		PaymentTerms: "Net 15",
		Primary:      model.Contact{Name: "Emma Rodriguez", Email: "emma@ecosupply.com", Phone: "+1 (555) 456-7891"},
		Rating:       4.2,
		TotalOrders:  34,
		TotalValue:   567000,
		Website:      "https://www.ecosupply.com",
		TaxID:        "US456789123",
	},
	{
		Name:         "Premium Materials Ltd",
		Email:        "sales@premiummaterials.com",
		Phone:        "+44 20 7123 4567",
		Address:      "10 Regent Street",
		City:         "London",
		Country:      "UK",
		Category:     "Parts",
		Status:       model.StatusActive,
		Tags:         model.StringList{"steel", "oem-parts", "bulk"},
		PaymentTerms: "Net 30",
		Primary:      model.Contact{Name: "James Wilson", Email: "james.wilson@premiummaterials.com", Phone: "+44 20 7123 4568"},
		Billing:      model.Contact{Name: "Accounts Team", Email: "accounts@premiummaterials.com"},
		Rating:       4.9,
		TotalOrders:  203,
		TotalValue:   3200000,
		Website:      "https://www.premiummaterials.com",
		TaxID:        "GB123456789",
	},
	{
		Name:         "Digital Innovations Inc",
		Email:        "hello@digitalinnovations.com",
		Phone:        "+1 (555) 321-9876",
		Address:      "321 Tech Park",
		City:         "Austin",
		Country:      "USA",
		Category:     "Software / IT",
		Status:       model.StatusInactive,
		Tags:         model.StringList{"electronics", "displays"},
		PaymentTerms: "Net 60",
		Primary:      model.Contact{Name: "Lisa Park", Email: "lisa.park@digitalinnovations.com", Phone: "+1 (555) 321-9877"},
		Rating:       3.8,
		TotalOrders:  67,
		TotalValue:   890000,
		Website:      "https://www.digitalinnovations.com",
		TaxID:        "US789123456",
	},
	{
		Name:         "Reliable Services Corp",
		Email:        "support@reliableservices.com",
		Phone:        "+1 (555) 654-3210",
		Address:      "55 Commerce Way",
		City:         "Chicago",
		Country:      "USA",
		Category:     "Utilities",
		Status:       model.StatusActive,
		Tags:         model.StringList{"maintenance", "fast-delivery"},
		PaymentTerms: "COD",
		Primary:      model.Contact{Name: "Tom Alvarez", Email: "tom@reliableservices.com", Phone: "+1 (555) 654-3211"},
		Secondary:    model.Contact{Name: "Priya Nair", Email: "priya@reliableservices.com"},
		Rating:       4.1,
		TotalOrders:  48,
		TotalValue:   410000,
		Website:      "https://www.reliableservices.com",
		TaxID:        "US321654987",
	},
}

// seedParts builds the part catalog against the seeded supplier IDs.
func seedParts(suppliers []model.Supplier) []model.Part {
	id := func(i int) uint { return suppliers[i].ID }
	return []model.Part{
		{Name: "Engine Oil Filter", SupplierIDs: model.IDList{id(0), id(3)}},
		{Name: "Brake Pads - Front", SupplierIDs: model.IDList{id(1), id(3), id(5)}},
		{Name: "LED Display Panel", SupplierIDs: model.IDList{id(0), id(4)}},
		{Name: "Hydraulic Pump", SupplierIDs: model.IDList{id(1)}},
		{Name: "Circuit Board Assembly", SupplierIDs: model.IDList{id(0), id(3), id(4)}},
		{Name: "Steel Reinforcement Bars", SupplierIDs: model.IDList{id(3)}},
		{Name: "Packaging Materials", SupplierIDs: model.IDList{id(2), id(5)}},
		{Name: "Software License", SupplierIDs: model.IDList{id(0), id(4)}},
		{Name: "Power Supply Unit", SupplierIDs: model.IDList{id(5)}},
		{Name: "Transmission Fluid", SupplierIDs: model.IDList{id(1), id(2)}},
	}
}
