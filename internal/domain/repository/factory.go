package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Jobs() JobRepository
	Favorites() FavoriteRepository
	Profiles() ProfileRepository
}
