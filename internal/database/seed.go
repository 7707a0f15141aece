package database

import (
	"fmt"

	"aquisicoes-backend/internal/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedDefaultData loads the stock categories and cost centers when the
// tables are empty, so a fresh install is immediately usable.
func SeedDefaultData(db *gorm.DB) error {
	var categoryCount int64
	if err := db.Model(&model.Category{}).Count(&categoryCount).Error; err != nil {
		return fmt.Errorf("failed to count categories: %w", err)
	}

	if categoryCount == 0 {
		serviceCategories := [][2]string{
			{"Manutenção Predial", "Pintura, elétrica, hidráulica, reformas, carpintaria"},
			{"Serviços de Limpeza", "Limpeza predial, jardinagem e portaria"},
			{"Consultoria/Treinamento", "Consultorias técnicas ou treinamentos externos"},
			{"Instalação/Configuração", "Instalação ou configuração de sistemas e equipamentos"},
			{"Mão de Obra Temporária", "Contratos temporários de mão de obra especializada"},
			{"Serviços de Segurança", "Vigilância, monitoramento e segurança patrimonial"},
			{"Transporte e Logística", "Fretes, mudanças e transporte de equipamentos"},
			{"Serviços Gráficos", "Impressão, encadernação e materiais promocionais"},
			{"Calibração e Manutenção", "Calibração de equipamentos e manutenção preventiva"},
			{"Serviços de Comunicação", "Telefonia, internet e sistemas de comunicação"},
		}
		supplyCategories := [][2]string{
			{"Equipamentos de Laboratório", "Multímetros, osciloscópios, bancadas, ferramentas de precisão"},
			{"Equipamentos de Informática", "Computadores, notebooks, periféricos, redes"},
			{"Equipamentos de Cursos", "Equipamentos para desenvolvimento, logística, mecânica, eletrotécnica"},
			{"Materiais de Consumo", "Papel, tinta, cabos, componentes eletrônicos, peças de reposição"},
			{"Software/Licenças", "Software educacional, sistemas operacionais, licenças"},
			{"Mobiliário Escolar", "Carteiras, cadeiras, mesas, armários, quadros"},
			{"Equipamentos de Segurança", "EPIs, extintores, câmeras, alarmes"},
			{"Material Didático", "Livros, apostilas, materiais pedagógicos"},
			{"Ferramentas e Instrumentos", "Ferramentas manuais, instrumentos de medição"},
			{"Materiais de Construção", "Materiais para obras e reformas prediais"},
			{"Equipamentos Audiovisuais", "Projetores, telas, sistemas de som, TVs"},
			{"Materiais de Escritório", "Papelaria, suprimentos administrativos"},
		}

		for _, c := range serviceCategories {
			category := model.Category{Name: c[0], Description: c[1], Type: model.TypeServico, Active: true}
			if err := db.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", c[0], err)
			}
		}
		for _, c := range supplyCategories {
			category := model.Category{Name: c[0], Description: c[1], Type: model.TypeInsumo, Active: true}
			if err := db.Create(&category).Error; err != nil {
				return fmt.Errorf("failed to seed category %q: %w", c[0], err)
			}
		}
	}

	var costCenterCount int64
	if err := db.Model(&model.CostCenter{}).Count(&costCenterCount).Error; err != nil {
		return fmt.Errorf("failed to count cost centers: %w", err)
	}

	if costCenterCount == 0 {
		costCenters := [][3]string{
			{"ADM", "Administração", "Centro de custo administrativo"},
			{"LAB", "Laboratórios", "Laboratórios e oficinas"},
			{"INFO", "Informática", "Tecnologia da informação"},
			{"MAN", "Manutenção", "Manutenção predial"},
			{"CURSO", "Cursos", "Cursos técnicos e profissionalizantes"},
		}
		for _, cc := range costCenters {
			costCenter := model.CostCenter{Code: cc[0], Name: cc[1], Description: cc[2], Active: true}
			if err := db.Create(&costCenter).Error; err != nil {
				return fmt.Errorf("failed to seed cost center %q: %w", cc[0], err)
			}
		}
	}

	return nil
}

// SeedAdminUser creates the bootstrap admin account if no admin exists.
// The password comes from ADMIN_PASSWORD at startup; the account is
// pre-approved so the first login works.
func SeedAdminUser(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admin users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := model.User{
		Email:     email,
		FirstName: "Administrador",
		Password:  string(hash),
		Role:      model.RoleAdmin,
		Active:    true,
		Approved:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	return nil
}
