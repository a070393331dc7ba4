// igp-generator/internal/handlers/plan_report_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/SinSayWu/igp-generator-sub000/config"
	"github.com/SinSayWu/igp-generator-sub000/internal/planner"
	"github.com/SinSayWu/igp-generator-sub000/models"

	"github.com/Knetic/govaluate"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// defaultReadinessFormula - формула готовности к выпуску по умолчанию.
// Консультант может переопределить ее через переменную окружения
// READINESS_FORMULA; доступные параметры совпадают с полями отчета.
const defaultReadinessFormula = "(EarnedCredits + PlannedCredits) / RequiredCredits * 100"

// requirementProgress - прогресс студента по одному требованию к выпуску.
type requirementProgress struct {
	Name            string  `json:"name"`
	RequiredCredits float64 `json:"requiredCredits"`
	EarnedCredits   float64 `json:"earnedCredits"`
	PlannedCredits  float64 `json:"plannedCredits"`
	MissingCredits  float64 `json:"missingCredits"`
}

// fulfillsOverlap проверяет, закрывает ли курс хотя бы один тег требования.
func fulfillsOverlap(courseTags, reqTags []string) bool {
	for _, ct := range courseTags {
		for _, rt := range reqTags {
			if ct == rt {
				return true
			}
		}
	}
	return false
}

// buildPlanReport считает прогресс по всем требованиям из записей студента.
func buildPlanReport(rows []models.StudentCourse, reqs []models.GraduationRequirement) []requirementProgress {
	report := make([]requirementProgress, 0, len(reqs))
	for _, req := range reqs {
		progress := requirementProgress{Name: req.Name, RequiredCredits: req.MinCredits}
		for _, row := range rows {
			if row.Course == nil || !fulfillsOverlap(row.Course.Fulfills, req.Fulfills) {
				continue
			}
			if row.Status == models.StatusPlanned {
				progress.PlannedCredits += row.Course.Credits
			} else {
				progress.EarnedCredits += row.Course.Credits
			}
		}
		missing := req.MinCredits - progress.EarnedCredits - progress.PlannedCredits
		if missing > 0 {
			progress.MissingCredits = missing
		}
		report = append(report, progress)
	}
	return report
}

// GetPlanReportHandler возвращает прогресс по требованиям к выпуску и
// интегральный показатель готовности, вычисленный по настраиваемой формуле.
func GetPlanReportHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	var rows []models.StudentCourse
	if err := config.DB.Preload("Course").
		Where("student_id = ?", student.ID).Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not fetch course records"})
		return
	}
	reqs, err := planner.LoadGraduationRequirements(config.DB)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load graduation requirements"})
		return
	}

	report := buildPlanReport(rows, reqs)

	// Суммарные параметры для формулы готовности.
	parameters := make(map[string]interface{})
	var earned, planned, required float64
	for _, p := range report {
		earned += p.EarnedCredits
		planned += p.PlannedCredits
		required += p.RequiredCredits
	}
	parameters["EarnedCredits"] = earned
	parameters["PlannedCredits"] = planned
	parameters["RequiredCredits"] = required
	parameters["RequirementCount"] = float64(len(reqs))

	formula := os.Getenv("READINESS_FORMULA")
	if formula == "" {
		formula = defaultReadinessFormula
	}

	readiness := 0.0
	if required > 0 {
		expr, err := govaluate.NewEvaluableExpression(formula)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid readiness formula: " + formula})
			return
		}
		result, err := expr.Evaluate(parameters)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not evaluate readiness formula"})
			return
		}
		if value, ok := result.(float64); ok {
			if value > 100 {
				value = 100
			}
			readiness = value
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"requirements": report,
		"readiness":    readiness,
	})
}

// ExportPlanHandler выгружает текущий план студента в Excel-файл.
func ExportPlanHandler(c *gin.Context) {
	student, ok := currentStudent(c)
	if !ok {
		return
	}

	var rows []models.StudentCourse
	if err := config.DB.Preload("Course").
		Where("student_id = ?", student.ID).Order("grade_level asc, id asc").
		Find(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch data for export"})
		return
	}

	f := excelize.NewFile()
	sheetName := "Course Plan"
	index, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Grade", "Course", "Credits", "Level", "Status", "Final Grade"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	excelRow := 1
	for _, row := range rows {
		if row.Course == nil {
			continue
		}
		excelRow++
		grade := ""
		if row.GradeLevel != nil {
			if *row.GradeLevel < 9 {
				grade = planner.GradeMS
			} else {
				grade = fmt.Sprintf("%d", *row.GradeLevel)
			}
		}
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", excelRow), grade)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", excelRow), row.Course.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", excelRow), row.Course.Credits)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", excelRow), row.Course.Level)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", excelRow), row.Status)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", excelRow), row.Grade)
	}

	// Итоговая строка: заработанные и запланированные кредиты.
	var earned, planned float64
	for _, row := range rows {
		if row.Course == nil {
			continue
		}
		if row.Status == models.StatusPlanned {
			planned += row.Course.Credits
		} else {
			earned += row.Course.Credits
		}
	}
	excelRow += 2
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", excelRow), "Credits earned")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", excelRow), earned)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", excelRow+1), "Credits planned")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", excelRow+1), planned)

	fileName := fmt.Sprintf("course_plan_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
	}
}
