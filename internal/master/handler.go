package master

import (
	"strings"

	"caisse-backend/internal/database"
	"caisse-backend/internal/models"

	"github.com/gofiber/fiber/v2"
)

// -------------------------------------------------
// Suppliers
// -------------------------------------------------

// POST /api/suppliers: upsert by name, case-insensitive
func UpsertSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom obligatoire")
		}

		var existing models.Supplier
		if err := database.DB.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err == nil {
			return c.JSON(existing)
		}

		supplier := models.Supplier{Name: name}
		if err := database.DB.Create(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création du fournisseur échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(supplier)
	}
}

// GET /api/suppliers
func ListSuppliersHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name ASC").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture des fournisseurs échouée")
		}
		return c.JSON(suppliers)
	}
}

// PUT /api/suppliers/:id
func UpdateSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		var body struct {
			Name string `json:"name"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom obligatoire")
		}

		var supplier models.Supplier
		if err := database.DB.First(&supplier, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Fournisseur introuvable")
		}
		supplier.Name = name
		if err := database.DB.Save(&supplier).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour du fournisseur échouée")
		}
		return c.JSON(supplier)
	}
}

// DELETE /api/suppliers/:id
func DeleteSupplierHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		if err := database.DB.Delete(&models.Supplier{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression échouée")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// -------------------------------------------------
// Designations (expense line labels, typed supplier/misc/admin)
// -------------------------------------------------

// POST /api/designations: upsert by name; an existing row keeps its id but
// may change type
func UpsertDesignationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom obligatoire")
		}

		var existing models.Designation
		if err := database.DB.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err == nil {
			if body.Type != "" && existing.Type != body.Type {
				existing.Type = body.Type
				if err := database.DB.Save(&existing).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour de la désignation échouée")
				}
			}
			return c.JSON(existing)
		}

		if body.Type == "" {
			body.Type = "misc"
		}
		designation := models.Designation{Name: name, Type: body.Type}
		if err := database.DB.Create(&designation).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de la désignation échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(designation)
	}
}

// GET /api/designations?type=misc
func ListDesignationsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Designation{})
		if t := c.Query("type"); t != "" {
			dbq = dbq.Where("type = ?", t)
		}
		var designations []models.Designation
		if err := dbq.Order("name ASC").Find(&designations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture des désignations échouée")
		}
		return c.JSON(designations)
	}
}

// PUT /api/designations/:id
func UpdateDesignationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		var body struct {
			Name string `json:"name"`
			Type string `json:"type"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom obligatoire")
		}

		var designation models.Designation
		if err := database.DB.First(&designation, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Désignation introuvable")
		}
		designation.Name = name
		if body.Type != "" {
			designation.Type = body.Type
		}
		if err := database.DB.Save(&designation).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour de la désignation échouée")
		}
		return c.JSON(designation)
	}
}

// DELETE /api/designations/:id
func DeleteDesignationHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		if err := database.DB.Delete(&models.Designation{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression échouée")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}

// -------------------------------------------------
// Employees
// -------------------------------------------------

// POST /api/employees: upsert by name; may update department
func UpsertEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body struct {
			Name       string `json:"name"`
			Department string `json:"department"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom obligatoire")
		}

		var existing models.Employee
		if err := database.DB.Where("LOWER(name) = LOWER(?)", name).First(&existing).Error; err == nil {
			if body.Department != "" && existing.Department != body.Department {
				existing.Department = body.Department
				if err := database.DB.Save(&existing).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour de l'employé échouée")
				}
			}
			return c.JSON(existing)
		}

		employee := models.Employee{Name: name, Department: body.Department}
		if err := database.DB.Create(&employee).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Création de l'employé échouée")
		}
		return c.Status(fiber.StatusCreated).JSON(employee)
	}
}

// GET /api/employees
func ListEmployeesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var employees []models.Employee
		if err := database.DB.Order("name ASC").Find(&employees).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Lecture des employés échouée")
		}
		return c.JSON(employees)
	}
}

// PUT /api/employees/:id
func UpdateEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		var body struct {
			Name       string `json:"name"`
			Department string `json:"department"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Corps de requête invalide")
		}
		name := strings.TrimSpace(body.Name)
		if name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Nom obligatoire")
		}

		var employee models.Employee
		if err := database.DB.First(&employee, id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Employé introuvable")
		}
		employee.Name = name
		employee.Department = body.Department
		if err := database.DB.Save(&employee).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Mise à jour de l'employé échouée")
		}
		return c.JSON(employee)
	}
}

// DELETE /api/employees/:id
func DeleteEmployeeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Identifiant invalide")
		}
		if err := database.DB.Delete(&models.Employee{}, id).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Suppression échouée")
		}
		return c.JSON(fiber.Map{"ok": true})
	}
}
