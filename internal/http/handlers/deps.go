package handlers

import (
	"dealpulse/internal/api"
	"dealpulse/internal/router"
	"dealpulse/internal/session"
	"dealpulse/internal/views"
)

// StorageProvider returns the persisted storage of one visitor.
type StorageProvider func(sid string) session.Storage

type Deps struct {
	PageHandler    *PageHandler
	AuthHandler    *AuthHandler
	ProductHandler *ProductHandler
	visitors       *visitors
}

func NewDeps(client *api.Client, storage StorageProvider) *Deps {
	v := &visitors{api: client, storage: storage}
	return &Deps{
		PageHandler:    &PageHandler{visitors: v},
		AuthHandler:    &AuthHandler{visitors: v},
		ProductHandler: &ProductHandler{visitors: v},
		visitors:       v,
	}
}

type visitors struct {
	api     *api.Client
	storage StorageProvider
}

func (v *visitors) views(store *session.Store) map[router.Route]views.View {
	return map[router.Route]views.View{
		router.Discover:   &views.Discover{Catalog: v.api},
		router.Login:      views.NewLogin(v.api, store),
		router.Signup:     views.NewSignup(v.api, store),
		router.AddProduct: &views.AddProduct{Products: v.api, Sessions: store},
	}
}
