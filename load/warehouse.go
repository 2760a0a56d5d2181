package load

import (
	"database/sql"
	"fmt"

	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/utils"
)

// MySQLWarehouse реализация Warehouse для MySQL
type MySQLWarehouse struct {
	db     *sql.DB
	logger *utils.ETLLogger
}

// NewMySQLWarehouse создает новый экземпляр MySQLWarehouse
func NewMySQLWarehouse(db *sql.DB, logger *utils.ETLLogger) *MySQLWarehouse {
	return &MySQLWarehouse{
		db:     db,
		logger: logger,
	}
}

// BeginBatch открывает транзакцию партии загрузки
func (w *MySQLWarehouse) BeginBatch() (BatchTx, error) {
	tx, err := w.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("ошибка при начале транзакции: %w", err)
	}

	return &mysqlBatchTx{
		tx:     tx,
		logger: w.logger,
	}, nil
}

// CountRows возвращает количество строк в целевой таблице.
// Используется проверкой после фиксации партии
func (w *MySQLWarehouse) CountRows(target models.TargetTable) (int64, error) {
	var count int64

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s", target.Qualified())
	if err := w.db.QueryRow(query).Scan(&count); err != nil {
		return 0, fmt.Errorf("ошибка при подсчете строк %s: %w", target, err)
	}

	return count, nil
}

// mysqlBatchTx реализация BatchTx поверх одной MySQL-транзакции
type mysqlBatchTx struct {
	tx     *sql.Tx
	logger *utils.ETLLogger
}

// TargetExists проверяет существование целевой таблицы через information_schema
func (t *mysqlBatchTx) TargetExists(target models.TargetTable) (bool, error) {
	var count int

	query := `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = ? AND table_name = ?
	`

	if err := t.tx.QueryRow(query, target.Schema, target.Name).Scan(&count); err != nil {
		return false, fmt.Errorf("ошибка при проверке существования %s: %w", target, err)
	}

	return count > 0, nil
}

// ClearTarget удаляет содержимое целевой таблицы.
// Именно DELETE, а не TRUNCATE: TRUNCATE в MySQL выполняет неявную фиксацию
// и сломал бы атомарность партии
func (t *mysqlBatchTx) ClearTarget(target models.TargetTable) error {
	query := fmt.Sprintf("DELETE FROM %s", target.Qualified())

	if _, err := t.tx.Exec(query); err != nil {
		return fmt.Errorf("ошибка при очистке %s: %w", target, err)
	}

	return nil
}

// InsertCategories загружает справочник категорий обслуживания
func (t *mysqlBatchTx) InsertCategories(categories []models.MaintenanceCategory) (int, error) {
	return NewCategoryLoader(t.tx, t.logger).Load(categories)
}

// InsertCustomers загружает измерение клиентов
func (t *mysqlBatchTx) InsertCustomers(customers []models.CustomerDimension) (int, error) {
	return NewCustomerLoader(t.tx, t.logger).Load(customers)
}

// InsertProducts загружает измерение товаров
func (t *mysqlBatchTx) InsertProducts(products []models.ProductDimension) (int, error) {
	return NewProductLoader(t.tx, t.logger).Load(products)
}

// InsertSales загружает факты продаж
func (t *mysqlBatchTx) InsertSales(sales []models.SalesFact) (int, error) {
	return NewSalesLoader(t.tx, t.logger).Load(sales)
}

// Commit фиксирует партию
func (t *mysqlBatchTx) Commit() error {
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("ошибка при фиксации транзакции: %w", err)
	}
	return nil
}

// Rollback откатывает партию
func (t *mysqlBatchTx) Rollback() error {
	if err := t.tx.Rollback(); err != nil {
		return fmt.Errorf("ошибка при откате транзакции: %w", err)
	}
	return nil
}
