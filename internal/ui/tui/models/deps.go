package models

import (
	"github.com/PizzaHomicide/hotaru/internal/catalog"
	"github.com/PizzaHomicide/hotaru/internal/config"
	"github.com/PizzaHomicide/hotaru/internal/domain"
	"github.com/PizzaHomicide/hotaru/internal/player"
	"github.com/PizzaHomicide/hotaru/internal/storage"
	"github.com/PizzaHomicide/hotaru/internal/wishlist"
)

// Deps bundles the services the views work against.  Everything is created
// once in main and injected; models never construct services themselves.
type Deps struct {
	Config   *config.Config
	Auth     domain.AuthService
	Catalog  *catalog.Service
	Wishlist *wishlist.Store
	Profiles domain.ProfileRepository
	Manager  *player.Manager
	KV       storage.KV
}
