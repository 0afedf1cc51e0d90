package repository

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Batches BatchRepository
	Sales   SaleRepository
	Dues    DueRepository
	Catalog CatalogRepository
}
