package services

import (
	portsrepo "github.com/kvyts/library_lending_app/internal/core/ports/repositories"
	portssvc "github.com/kvyts/library_lending_app/internal/core/ports/services"
	"github.com/kvyts/library_lending_app/internal/platform/config"
)

// NewServiceContainer wires every service with its repository dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Book = NewBookService(repos.BookRepo)
	container.Borrowing = NewBorrowingService(repos.BorrowingRepo)

	// Token services depend on the user service for refresh token validation.
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	return container
}
