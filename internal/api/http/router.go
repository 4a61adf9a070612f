// Package http is the JSON surface of the rental broker.
package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"sheerent-backend/internal/device"
	"sheerent-backend/internal/service"
)

// NewRouter wires all handlers. Literal paths are registered before their
// parameterized siblings so "/items/available" is not read as an item id.
func NewRouter(
	userSvc service.UserService,
	itemSvc service.ItemService,
	rentalSvc service.RentalService,
	lockerSvc service.LockerService,
	dev device.LockerDevice,
) *mux.Router {
	users := NewUserHandler(userSvc)
	items := NewItemHandler(itemSvc, lockerSvc)
	rentals := NewRentalHandler(rentalSvc)
	lockers := NewLockerHandler(lockerSvc)
	capture := NewCaptureHandler(dev)

	r := mux.NewRouter()

	r.HandleFunc("/users", users.Register).Methods(http.MethodPost)
	r.HandleFunc("/users/login", users.Login).Methods(http.MethodPost)
	r.HandleFunc("/users/{id:[0-9]+}", users.Get).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}/charge", users.ChargePoints).Methods(http.MethodPut)
	r.HandleFunc("/users/{id:[0-9]+}/items", users.ListItems).Methods(http.MethodGet)
	r.HandleFunc("/users/{id:[0-9]+}/rentals", users.ListRentals).Methods(http.MethodGet)

	r.HandleFunc("/items", items.Register).Methods(http.MethodPost)
	r.HandleFunc("/items/available", items.ListAvailable).Methods(http.MethodGet)
	r.HandleFunc("/items/stats", items.Stats).Methods(http.MethodGet)
	r.HandleFunc("/items/owned/{user_id:[0-9]+}", items.ListByOwner).Methods(http.MethodGet)
	r.HandleFunc("/items/{id:[0-9]+}", items.Get).Methods(http.MethodGet)
	r.HandleFunc("/items/{id:[0-9]+}", items.Update).Methods(http.MethodPatch)
	r.HandleFunc("/items/{id:[0-9]+}", items.Delete).Methods(http.MethodDelete)

	r.HandleFunc("/rentals", rentals.Create).Methods(http.MethodPost)
	r.HandleFunc("/rentals", rentals.List).Methods(http.MethodGet)
	r.HandleFunc("/rentals/quote", rentals.Quote).Methods(http.MethodGet)
	r.HandleFunc("/rentals/stats/{user_id:[0-9]+}", rentals.StatsByUser).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{id:[0-9]+}", rentals.Get).Methods(http.MethodGet)
	r.HandleFunc("/rentals/{id:[0-9]+}/return", rentals.Return).Methods(http.MethodPut)
	r.HandleFunc("/rentals/{id:[0-9]+}/extend", rentals.Extend).Methods(http.MethodPut)

	r.HandleFunc("/lockers/available", lockers.ListAvailable).Methods(http.MethodGet)

	r.HandleFunc("/capture", capture.Capture).Methods(http.MethodGet)
	r.HandleFunc("/locker/open", capture.Open).Methods(http.MethodPost)
	r.HandleFunc("/locker/close", capture.Close).Methods(http.MethodPost)

	return r
}
