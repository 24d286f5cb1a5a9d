package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"supplier-directory/internal/model"
	"supplier-directory/internal/query"
	"supplier-directory/internal/stats"
	"supplier-directory/internal/store"
	"supplier-directory/pkg/database"
	"supplier-directory/pkg/logger"
	"supplier-directory/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// dateLayout is the wire format for last_order dates.
const dateLayout = "2006-01-02"

// ContactRequest is one contact sub-record in a supplier payload.
type ContactRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (r ContactRequest) toModel() model.Contact {
	return model.Contact{Name: r.Name, Email: r.Email, Phone: r.Phone}
}

// SupplierRequest defines the structure for supplier creation requests
type SupplierRequest struct {
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	City         string          `json:"city"`
	State        string          `json:"state"`
	Country      string          `json:"country"`
	PostalCode   string          `json:"postal_code"`
	Category     string          `json:"category"`
	Status       string          `json:"status"`
	Tags         []string        `json:"tags"`
	PaymentTerms string          `json:"payment_terms"`
	Primary      ContactRequest  `json:"primary_contact"`
	Secondary    *ContactRequest `json:"secondary_contact"`
	Technical    *ContactRequest `json:"technical_contact"`
	Parts        *ContactRequest `json:"parts_contact"`
	Billing      *ContactRequest `json:"billing_contact"`
	Rating       float64         `json:"rating"`
	TotalOrders  int             `json:"total_orders"`
	TotalValue   float64         `json:"total_value"`
	Website      string          `json:"website"`
	TaxID        string          `json:"tax_id"`
}

// SupplierUpdateRequest carries a partial update: only provided fields are
// merged onto the existing record before re-validation.
type SupplierUpdateRequest struct {
	Name         *string         `json:"name"`
	Email        *string         `json:"email"`
	Phone        *string         `json:"phone"`
	Address      *string         `json:"address"`
	City         *string         `json:"city"`
	State        *string         `json:"state"`
	Country      *string         `json:"country"`
	PostalCode   *string         `json:"postal_code"`
	Category     *string         `json:"category"`
	Status       *string         `json:"status"`
	Tags         *[]string       `json:"tags"`
	PaymentTerms *string         `json:"payment_terms"`
	Primary      *ContactRequest `json:"primary_contact"`
	Secondary    *ContactRequest `json:"secondary_contact"`
	Technical    *ContactRequest `json:"technical_contact"`
	Parts        *ContactRequest `json:"parts_contact"`
	Billing      *ContactRequest `json:"billing_contact"`
	Rating       *float64        `json:"rating"`
	TotalOrders  *int            `json:"total_orders"`
	TotalValue   *float64        `json:"total_value"`
	LastOrder    *string         `json:"last_order"`
	Website      *string         `json:"website"`
	TaxID        *string         `json:"tax_id"`
}

// CreateSupplier creates a new supplier
func CreateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new supplier")
	prometheus.RecordSupplierOperation("create")

	var req SupplierRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	supplier := model.Supplier{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		PostalCode:   req.PostalCode,
		Category:     req.Category,
		Status:       req.Status,
		Tags:         model.NormalizeTags(req.Tags),
		PaymentTerms: req.PaymentTerms,
		Primary:      req.Primary.toModel(),
		Rating:       req.Rating,
		TotalOrders:  req.TotalOrders,
		TotalValue:   req.TotalValue,
		Website:      req.Website,
		TaxID:        req.TaxID,
	}
	if req.Secondary != nil {
		supplier.Secondary = req.Secondary.toModel()
	}
	if req.Technical != nil {
		supplier.Technical = req.Technical.toModel()
	}
	if req.Parts != nil {
		supplier.Parts = req.Parts.toModel()
	}
	if req.Billing != nil {
		supplier.Billing = req.Billing.toModel()
	}

	log.Info("Supplier creation request",
		zap.String("name", req.Name),
		zap.String("email", req.Email),
		zap.String("category", req.Category))

	// Track DB operations
	defer prometheus.TrackDBOperation("insert")(time.Now())

	if err := store.New(database.GetDB()).Create(&supplier); err != nil {
		return writeStoreError(c, log, err, "Failed to create supplier")
	}

	// Refresh status gauges in the background
	go updateStatusGauges()

	log.Info("Supplier created successfully",
		zap.Uint("id", supplier.ID),
		zap.String("name", supplier.Name),
		zap.String("email", supplier.Email))
	return c.JSON(http.StatusCreated, supplier)
}

// GetSupplier retrieves a supplier by ID
func GetSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("get")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid supplier ID",
		})
	}

	log.Info("Getting supplier by ID", zap.Uint("supplier_id", id))

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	supplier, err := store.New(database.GetDB()).Get(id)
	if err != nil {
		return writeStoreError(c, log, err, "Failed to retrieve supplier")
	}

	return c.JSON(http.StatusOK, supplier)
}

// ListSuppliers retrieves suppliers matching the request filters
func ListSuppliers(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Listing suppliers with filters")
	prometheus.RecordSupplierOperation("list")

	spec := specFromParams(c)

	// Parse query parameters for pagination
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page <= 0 {
		page = 1
	}

	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	if limit <= 0 || limit > 100 {
		limit = 15 // Default limit
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	suppliers, err := store.New(database.GetDB()).List(spec)
	if err != nil {
		log.Error("Failed to retrieve suppliers", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to retrieve suppliers",
		})
	}

	total := len(suppliers)
	offset := (page - 1) * limit
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	log.Info("Suppliers retrieved successfully",
		zap.Int("count", end-offset),
		zap.Int("total", total))

	return c.JSON(http.StatusOK, echo.Map{
		"suppliers": suppliers[offset:end],
		"pagination": echo.Map{
			"current_page": page,
			"limit":        limit,
			"total":        total,
			"total_pages":  (total + limit - 1) / limit,
		},
	})
}

// UpdateSupplier merges the provided fields onto an existing supplier and
// re-validates the result
func UpdateSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("update")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid supplier ID",
		})
	}

	log.Info("Updating supplier", zap.Uint("supplier_id", id))

	var req SupplierUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data",
			zap.Uint("supplier_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid request data",
		})
	}

	st := store.New(database.GetDB())
	supplier, err := st.Get(id)
	if err != nil {
		return writeStoreError(c, log, err, "Failed to retrieve supplier")
	}

	if err := req.applyTo(supplier); err != nil {
		log.Error("Invalid request data",
			zap.Uint("supplier_id", id),
			zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": err.Error(),
		})
	}

	// Track DB operations
	defer prometheus.TrackDBOperation("update")(time.Now())

	if err := st.Update(supplier); err != nil {
		return writeStoreError(c, log, err, "Failed to update supplier")
	}

	go updateStatusGauges()

	log.Info("Supplier updated successfully",
		zap.Uint("supplier_id", supplier.ID),
		zap.String("name", supplier.Name))
	return c.JSON(http.StatusOK, supplier)
}

// DeleteSupplier handles deleting a supplier (soft delete)
func DeleteSupplier(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("delete")

	id, err := parseID(c)
	if err != nil {
		log.Error("Invalid supplier ID", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error": "Invalid supplier ID",
		})
	}

	log.Info("Deleting supplier", zap.Uint("supplier_id", id))

	// Track DB operations
	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := store.New(database.GetDB()).Delete(id); err != nil {
		return writeStoreError(c, log, err, "Failed to delete supplier")
	}

	go updateStatusGauges()

	log.Info("Supplier deleted successfully", zap.Uint("supplier_id", id))
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Supplier deleted successfully",
	})
}

// SupplierStats computes summary figures. With filter parameters present
// the figures cover the filtered subset, otherwise the whole directory.
func SupplierStats(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordSupplierOperation("stats")

	spec := specFromParams(c)

	// Track DB operations
	defer prometheus.TrackDBOperation("query")(time.Now())

	suppliers, err := store.New(database.GetDB()).List(spec)
	if err != nil {
		log.Error("Failed to retrieve suppliers for stats", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"error": "Failed to compute supplier stats",
		})
	}

	return c.JSON(http.StatusOK, stats.Compute(suppliers))
}

// specFromParams translates list query parameters into a filter spec.
func specFromParams(c echo.Context) query.Spec {
	return query.Spec{
		SearchTerm: c.QueryParam("search"),
		Status:     c.QueryParam("status"),
		Category:   c.QueryParam("category"),
		TagTerm:    c.QueryParam("tag"),
		PartTerm:   c.QueryParam("part"),
		SortBy:     c.QueryParam("sort_by"),
		SortOrder:  c.QueryParam("sort_order"),
	}
}

// applyTo merges the provided fields onto the existing record.
func (r *SupplierUpdateRequest) applyTo(s *model.Supplier) error {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&s.Name, r.Name)
	setString(&s.Email, r.Email)
	setString(&s.Phone, r.Phone)
	setString(&s.Address, r.Address)
	setString(&s.City, r.City)
	setString(&s.State, r.State)
	setString(&s.Country, r.Country)
	setString(&s.PostalCode, r.PostalCode)
	setString(&s.Category, r.Category)
	setString(&s.Status, r.Status)
	setString(&s.PaymentTerms, r.PaymentTerms)
	setString(&s.Website, r.Website)
	setString(&s.TaxID, r.TaxID)

	if r.Tags != nil {
		s.Tags = model.NormalizeTags(*r.Tags)
	}
	if r.Primary != nil {
		s.Primary = r.Primary.toModel()
	}
	if r.Secondary != nil {
		s.Secondary = r.Secondary.toModel()
	}
	if r.Technical != nil {
		s.Technical = r.Technical.toModel()
	}
	if r.Parts != nil {
		s.Parts = r.Parts.toModel()
	}
	if r.Billing != nil {
		s.Billing = r.Billing.toModel()
	}
	if r.Rating != nil {
		s.Rating = *r.Rating
	}
	if r.TotalOrders != nil {
		s.TotalOrders = *r.TotalOrders
	}
	if r.TotalValue != nil {
		s.TotalValue = *r.TotalValue
	}
	if r.LastOrder != nil {
		if *r.LastOrder == "" {
			s.LastOrder = nil
		} else {
			t, err := time.Parse(dateLayout, *r.LastOrder)
			if err != nil {
				return errors.New("last_order must be a YYYY-MM-DD date")
			}
			s.LastOrder = &t
		}
	}
	return nil
}

// writeStoreError maps store errors onto HTTP responses: validation
// failures carry the full field→message map, conflicts and missing
// records get their conventional status codes.
func writeStoreError(c echo.Context, log *zap.Logger, err error, fallback string) error {
	var vErr *store.ValidationError
	if errors.As(err, &vErr) {
		log.Warn("Validation failed", zap.Error(err))
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error":  "Validation failed",
			"errors": vErr.Fields,
		})
	}

	var cErr *store.ConflictError
	if errors.As(err, &cErr) {
		log.Warn("Conflicting supplier data",
			zap.String("field", cErr.Field),
			zap.Error(err))
		return c.JSON(http.StatusConflict, echo.Map{
			"error": cErr.Message,
		})
	}

	if errors.Is(err, store.ErrNotFound) {
		log.Warn("Supplier not found", zap.Error(err))
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": "Supplier not found",
		})
	}

	log.Error(fallback, zap.Error(err))
	return c.JSON(http.StatusInternalServerError, echo.Map{
		"error": fallback,
	})
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}

// updateStatusGauges refreshes the suppliers-by-status gauges.
func updateStatusGauges() {
	for _, status := range model.Statuses {
		var count int64
		database.GetDB().Model(&model.Supplier{}).
			Where("status = ?", status).
			Count(&count)
		prometheus.UpdateSuppliersByStatus(status, int(count))
	}
}
