package database

type Store interface {
	SaveScreeningEntry(in *ScreeningEntry) error
}
