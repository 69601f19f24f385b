package repositories

// RepositoryProvider bundles every repository facade so wiring code can pass a
// single value around.
type RepositoryProvider struct {
	BookRepo      BookRepositoryFacade
	BorrowingRepo BorrowingRepositoryFacade
	UserRepo      UserRepositoryFacade
}
