package export

import (
	"fmt"
	"io"
	"os"

	"week-meal-planner/internal/planner"
	"week-meal-planner/internal/shopping"

	"github.com/xuri/excelize/v2"
)

const (
	ShoppingSheet = "Shopping List"
	MealsSheet    = "Meals"
)

// WriteXLSX writes the plan as a workbook with a shopping list sheet and a
// meals sheet. Known quantities are stored as numbers.
func WriteXLSX(w io.Writer, plan *planner.MealPlan) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ShoppingSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeRow(f, ShoppingSheet, 1, "Quantity", "Item"); err != nil {
		return err
	}
	for i, line := range plan.ShoppingList {
		parsed := shopping.ParseIngredient(line)
		var qty interface{} = ""
		if v, ok := parsed.Quantity.Value(); ok {
			qty = v
		}
		if err := writeRow(f, ShoppingSheet, i+2, qty, parsed.Description); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(MealsSheet); err != nil {
		return fmt.Errorf("create sheet %s: %w", MealsSheet, err)
	}
	if err := writeRow(f, MealsSheet, 1, "Day", "Recipe", "Portions"); err != nil {
		return err
	}
	for i, dp := range plan.Plan {
		if err := writeRow(f, MealsSheet, i+2, dp.Day, dp.RecipeTitle, dp.Portions); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

// WriteXLSXFile writes the workbook to path.
func WriteXLSXFile(path string, plan *planner.MealPlan) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteXLSX(out, plan); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
