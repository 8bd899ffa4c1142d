package http

import (
	"github.com/jyothimogili456/storesync/internal/devserver/domain"
)

// Response shapes follow the storefront wire contract: cart reads wrap their
// entries under "items", wishlist reads under "data", and errors always use
// the {"error":{code,message}} envelope written by httputil.

type itemsResponse struct {
	Items []domain.CartEntry `json:"items"`
}

type totalResponse struct {
	CartTotal float64 `json:"cartTotal"`
}

type dataResponse struct {
	Data []domain.WishlistEntry `json:"data"`
}

type statusResponse struct {
	Status string `json:"status"`
}
