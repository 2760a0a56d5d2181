package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/LilVoxy/coursework_dwh/config"
	"github.com/LilVoxy/coursework_dwh/extractors"
	"github.com/LilVoxy/coursework_dwh/load"
	"github.com/LilVoxy/coursework_dwh/models"
	"github.com/LilVoxy/coursework_dwh/routes"
	"github.com/LilVoxy/coursework_dwh/transform"
	"github.com/LilVoxy/coursework_dwh/utils"
	"github.com/go-co-op/gocron"
	"github.com/gorilla/mux"
)

// ETLRunner связывает фазы ETL-процесса: извлечение staging-партии,
// трансформацию, атомарную загрузку и проверку после фиксации
type ETLRunner struct {
	config        config.ETLConfig
	dbConnections *config.DBConnections
	logger        *utils.ETLLogger
	extractor     *extractors.Extractor
	transformer   *transform.Transformer
	loadManager   *load.LoadManager
	verifier      *load.Verifier
	etlLogRepo    models.ETLLogRepository
}

// NewETLRunner создает новый экземпляр ETLRunner
func NewETLRunner() (*ETLRunner, error) {
	// Получаем конфигурацию
	etlConfig := config.GetConfig()

	// Инициализируем логгер
	logger := utils.NewETLLogger(etlConfig.EnableDetailedLogging)
	logger.Info("Инициализация ETL Runner")

	// Подключаемся к базам данных
	connections, err := config.ConnectDatabases(etlConfig)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базам данных: %w", err)
	}

	// Инициализируем журнал запусков ETL
	etlLogRepo := models.NewMySQLETLLogRepository(connections.WarehouseDB)

	// Создаем таблицу журнала, если она еще не существует
	if err := etlLogRepo.CreateETLLogTable(); err != nil {
		return nil, fmt.Errorf("ошибка при создании таблицы журнала ETL: %w", err)
	}

	// Создаем экстрактор staging-данных
	extractor := extractors.NewExtractor(connections.StagingDB, logger)

	// Создаем трансформатор
	transformer := transform.NewTransformer(logger)

	// Создаем загрузчик и проверку
	warehouse := load.NewMySQLWarehouse(connections.WarehouseDB, logger)
	loadManager := load.NewLoadManager(warehouse, logger)
	verifier := load.NewVerifier(warehouse, logger)

	return &ETLRunner{
		config:        etlConfig,
		dbConnections: connections,
		logger:        logger,
		extractor:     extractor,
		transformer:   transformer,
		loadManager:   loadManager,
		verifier:      verifier,
		etlLogRepo:    etlLogRepo,
	}, nil
}

// Close закрывает соединения с базами данных
func (r *ETLRunner) Close() {
	r.logger.Info("Завершение работы ETL Runner")
	config.CloseDatabases(r.dbConnections)
}

// ExecuteETL выполняет полный ETL процесс: Extract → Transform → Load → Verify.
// Партия атомарна: любой провал до фиксации оставляет хранилище
// в состоянии до запуска
func (r *ETLRunner) ExecuteETL() error {
	r.logger.LogETLStart()
	startTime := time.Now()

	// Создаем запись в журнале ETL
	runID, err := r.etlLogRepo.CreateLogEntry(startTime)
	if err != nil {
		r.logger.Error("Ошибка при создании записи в журнале ETL: %v", err)
		return fmt.Errorf("ошибка при создании записи в журнале ETL: %w", err)
	}

	// 1. Фаза извлечения данных (Extract)
	batch, err := r.extractor.Extract()
	if err != nil {
		r.failRun(runID, 0, err)
		return fmt.Errorf("ошибка в фазе Extract: %w", err)
	}

	// 2. Фаза трансформации данных (Transform)
	transformedData, err := r.transformer.Transform(batch)
	if err != nil {
		r.failRun(runID, 0, err)
		return fmt.Errorf("ошибка в фазе Transform: %w", err)
	}

	// 3. Фаза загрузки данных (Load): одна транзакция на всю партию
	steps := load.NewBatchSteps(transformedData)
	result, err := r.loadManager.RunBatch(steps)
	if err != nil {
		failedStep := 0
		if result != nil && result.FailedStep != nil {
			failedStep = result.FailedStep.Step
		}
		r.failRun(runID, failedStep, err)
		return fmt.Errorf("ошибка в фазе Load: %w", err)
	}

	// 4. Проверка после фиксации. Провал проверки не откатывает партию:
	// фиксация уже произошла, сигнал уходит оператору как предупреждение
	verificationPassed, failures := r.verifier.Verify(load.ExpectedTargets())
	if !verificationPassed {
		r.logger.Warn("Проверка после фиксации выявила %d проблем", len(failures))
	}

	// Обновляем запись в журнале
	if err := r.etlLogRepo.UpdateLogEntrySuccess(runID, time.Now(), result, verificationPassed); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}

	r.logger.LogETLComplete(startTime,
		len(transformedData.Customers),
		len(transformedData.Products),
		len(transformedData.Sales))
	return nil
}

// failRun обновляет запись в журнале ETL при ошибке
func (r *ETLRunner) failRun(runID string, failedStep int, cause error) {
	if err := r.etlLogRepo.UpdateLogEntryFailure(runID, time.Now(), failedStep, cause.Error()); err != nil {
		r.logger.Error("Ошибка при обновлении записи в журнале ETL: %v", err)
	}
}

// StartScheduler запускает планировщик для регулярного выполнения ETL
func (r *ETLRunner) StartScheduler(ctx context.Context) {
	scheduler := gocron.NewScheduler(time.UTC)

	r.logger.Info("Запуск планировщика ETL с интервалом %v", r.config.RunInterval)

	_, err := scheduler.Every(r.config.RunInterval).Do(func() {
		r.logger.Info("Запланированный запуск ETL процесса")
		if err := r.ExecuteETL(); err != nil {
			r.logger.Error("Ошибка при выполнении запланированного ETL: %v", err)
		}
	})

	if err != nil {
		r.logger.Error("Ошибка при настройке планировщика: %v", err)
		return
	}

	// Запускаем планировщик
	scheduler.StartAsync()

	// Ожидаем сигнал остановки из контекста
	<-ctx.Done()

	// Останавливаем планировщик
	scheduler.Stop()
	r.logger.Info("Планировщик ETL остановлен")
}

// StartAPI запускает HTTP API отчётов о запусках ETL
func (r *ETLRunner) StartAPI() error {
	router := mux.NewRouter()
	routes.SetupRoutes(router, r.etlLogRepo)

	r.logger.Info("Запуск HTTP API отчётов на %s", r.config.APIAddr)
	return http.ListenAndServe(r.config.APIAddr, router)
}
