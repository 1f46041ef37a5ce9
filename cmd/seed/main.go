package main

import (
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/ikkim/hubline-admin/config"
	"github.com/ikkim/hubline-admin/internal/app/model"
	"github.com/ikkim/hubline-admin/internal/app/repository"
	"github.com/ikkim/hubline-admin/internal/db"
	"github.com/ikkim/hubline-admin/internal/report"
	"github.com/xuri/excelize/v2"
)

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path> [-y]")
	}

	filePath := os.Args[1]
	skipConfirm := len(os.Args) > 2 && os.Args[2] == "-y"

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(cfg.Admin); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	deliveryRepo := repository.NewDeliveryRepository(db.GetDB())
	commissionRepo := repository.NewCommissionRepository(db.GetDB())

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	deliveries, distributions, skipped, err := readDeliveriesFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total deliveries to import: %d (skipped rows: %d)\n", len(deliveries), skipped)
	if len(deliveries) == 0 {
		fmt.Println("Nothing to import.")
		return
	}

	// 사용자 확인
	if !skipConfirm {
		fmt.Print("Do you want to proceed with the import? (yes/no): ")
		var confirm string
		fmt.Scanln(&confirm)
		if confirm != "yes" && confirm != "y" {
			fmt.Println("Import cancelled.")
			return
		}
	}

	// 배치로 저장 (배달 먼저, 그 다음 수수료 분배)
	if err := deliveryRepo.CreateBatch(deliveries); err != nil {
		log.Fatal("Failed to bulk create deliveries:", err)
	}
	if err := commissionRepo.CreateBatch(distributions); err != nil {
		log.Fatal("Failed to bulk create commission distributions:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total deliveries imported: %d\n", len(deliveries))
}

// readDeliveriesFromXLSX assigns ids up front so each distribution points at its delivery
func readDeliveriesFromXLSX(filePath string) ([]model.Delivery, []model.CommissionDistribution, int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	imports, skipped, err := report.ParseDeliveryWorkbook(f)
	if err != nil {
		return nil, nil, 0, err
	}

	deliveries := make([]model.Delivery, 0, len(imports))
	distributions := make([]model.CommissionDistribution, 0, len(imports))
	for _, item := range imports {
		item.Delivery.ID = uuid.NewString()
		item.Distribution.DeliveryID = item.Delivery.ID
		deliveries = append(deliveries, item.Delivery)
		distributions = append(distributions, item.Distribution)
	}
	return deliveries, distributions, skipped, nil
}
