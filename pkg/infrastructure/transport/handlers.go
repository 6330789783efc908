package transport

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	adminservice "github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/application/service"
	catalogmodel "github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/domain/model"
	catalogservice "github.com/ruansmarques/MedFerpa-Store-2/pkg/catalog/domain/service"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/identity"
	ordermodel "github.com/ruansmarques/MedFerpa-Store-2/pkg/order/domain/model"
)

const maxUploadBytes = 10 << 20

type server struct {
	catalog    catalogservice.CatalogService
	admin      adminservice.AdminService
	orders     ordermodel.OrderRepository
	authorizer *identity.Authorizer
}

// Router wires the storefront API. Admin routes sit behind the authorizer;
// the caller identifies itself with the X-User-Email header.
func Router(catalog catalogservice.CatalogService, admin adminservice.AdminService, orders ordermodel.OrderRepository, authorizer *identity.Authorizer) http.Handler {
	s := &server{catalog: catalog, admin: admin, orders: orders, authorizer: authorizer}

	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/products", s.listProducts).Methods(http.MethodGet)
	api.HandleFunc("/products/{ID}", s.getProduct).Methods(http.MethodGet)
	api.HandleFunc("/orders", s.createOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders", s.listOrders).Methods(http.MethodGet)

	adm := api.PathPrefix("/admin").Subrouter()
	adm.Use(s.requireAdmin)
	adm.HandleFunc("/products", s.saveProduct).Methods(http.MethodPost)
	adm.HandleFunc("/products/{ID}", s.updateProduct).Methods(http.MethodPut)
	adm.HandleFunc("/products/{ID}", s.deleteProduct).Methods(http.MethodDelete)
	adm.HandleFunc("/products/images", s.uploadImage).Methods(http.MethodPost)

	return logMiddleware(r)
}

func (s *server) listProducts(w http.ResponseWriter, _ *http.Request) {
	products, err := s.catalog.ListProducts()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (s *server) getProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["ID"]

	product, err := s.catalog.GetProduct(id)
	if errors.Is(err, catalogmodel.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

type createOrderRequest struct {
	UserID     string              `json:"userId"`
	Customer   ordermodel.Customer `json:"customer"`
	TotalCents int64               `json:"totalCents"`
	Items      json.RawMessage     `json:"items"`
}

func (s *server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode order"))
		return
	}

	order := &ordermodel.Order{
		Number:     ordermodel.NewNumber(),
		UserID:     req.UserID,
		Customer:   req.Customer,
		TotalCents: req.TotalCents,
		Status:     ordermodel.Pending,
	}
	if order.UserID == "" {
		order.UserID = ordermodel.GuestUserID
	}
	if len(req.Items) > 0 {
		if err := json.Unmarshal(req.Items, &order.Items); err != nil {
			writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode order items"))
			return
		}
	}

	id, err := s.orders.NextID()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	order.ID = id

	if err := s.orders.Create(order); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *server) listOrders(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, errors.New("userId is required"))
		return
	}

	orders, err := s.orders.ListByUser(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

type productDraftRequest struct {
	Name        string                      `json:"name"`
	PriceCents  int64                       `json:"priceCents"`
	Category    string                      `json:"category"`
	Badges      []string                    `json:"badges"`
	Description string                      `json:"description"`
	Features    []string                    `json:"features"`
	Sizes       []string                    `json:"sizes"`
	Colors      []catalogmodel.ColorVariant `json:"colors"`
}

func (r productDraftRequest) toDraft() adminservice.ProductDraft {
	return adminservice.ProductDraft{
		Name:        r.Name,
		PriceCents:  r.PriceCents,
		Category:    r.Category,
		Badges:      r.Badges,
		Description: r.Description,
		Features:    r.Features,
		Sizes:       r.Sizes,
		Colors:      r.Colors,
	}
}

func (s *server) saveProduct(w http.ResponseWriter, r *http.Request) {
	s.save(w, r, "")
}

func (s *server) updateProduct(w http.ResponseWriter, r *http.Request) {
	s.save(w, r, mux.Vars(r)["ID"])
}

func (s *server) save(w http.ResponseWriter, r *http.Request, editingID string) {
	var req productDraftRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "decode product draft"))
		return
	}

	product, err := s.admin.SaveProduct(req.toDraft(), editingID)
	switch {
	case errors.Is(err, catalogmodel.ErrNameRequired),
		errors.Is(err, catalogmodel.ErrNegativePrice),
		errors.Is(err, catalogmodel.ErrNoColorVariants):
		writeError(w, http.StatusBadRequest, err)
		return
	case errors.Is(err, catalogmodel.ErrProductNotFound):
		writeError(w, http.StatusNotFound, err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	status := http.StatusCreated
	if editingID != "" {
		status = http.StatusOK
	}
	writeJSON(w, status, product)
}

func (s *server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["ID"]

	// The interactive confirmation happened on the client; the DELETE call
	// is the confirmation.
	err := s.admin.DeleteProduct(id, func() bool { return true })
	if errors.Is(err, catalogmodel.ErrProductNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) uploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "parse upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "missing file"))
		return
	}
	defer file.Close()

	colorName := r.FormValue("colorName")
	colorHex := r.FormValue("colorHex")

	variant, err := s.admin.UploadVariantImage(header.Filename, file, colorName, colorHex)
	if errors.Is(err, adminservice.ErrColorNameRequired) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, variant)
}

func (s *server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		email := r.Header.Get("X-User-Email")
		if email == "" {
			writeError(w, http.StatusUnauthorized, errors.New("sign in required"))
			return
		}
		if !s.authorizer.IsAdmin(&identity.Principal{ID: email, Email: email}) {
			writeError(w, http.StatusForbidden, errors.New("admin access denied"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("write response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
