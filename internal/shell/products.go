package shell

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"sislog/internal/console"
	"sislog/internal/database/sqlc"
	"sislog/internal/logi"
)

func (s *Shell) productsMenu() error {
	return s.loop("Manage Products", "Back", []action{
		{"Add Product", s.addProduct},
		{"List Products", s.listProducts},
		{"Update Product", s.updateProduct},
		{"Update Delivery Status", s.updateProductStatus},
		{"Delete Product", s.deleteProduct},
	})
}

func (s *Shell) addProduct() error {
	var (
		in  logi.ProductInput
		err error
	)
	if in.Weight, err = readKg(s.con, "Weight (kg)", decimal.Zero); err != nil {
		return err
	}
	if in.Category, err = choose(s.con, "Category", logi.ProductCategories, ""); err != nil {
		return err
	}
	if in.Status, err = choose(s.con, "Delivery status", logi.DeliveryStatuses, logi.StatusProcessing); err != nil {
		return err
	}
	if in.ArrivedAt, err = readDate(s.con, "Arrival date, blank for today", true); err != nil {
		return err
	}
	if in.ExpectedDelivery, err = readDate(s.con, "Expected delivery, blank if unknown", true); err != nil {
		return err
	}
	if in.SenderID, err = readID(s.con, "Sender (client person id)", false); err != nil {
		return err
	}
	if in.RecipientID, err = readID(s.con, "Recipient (person id)", false); err != nil {
		return err
	}
	if in.DriverID, err = readID(s.con, "Driver (employee person id, 0 for none)", true); err != nil {
		return err
	}

	return s.rec.Record("product add", "", func() error {
		p, t, err := s.svc.AddProduct(in)
		if err != nil {
			return err
		}
		s.con.Printf("Product %d added. Tracking code: %s\n", p.ID, t.Code)
		return nil
	})
}

func (s *Shell) listProducts() error {
	products, err := s.svc.ListProducts()
	if err != nil {
		return err
	}
	printProducts(s.con, products)
	return nil
}

func (s *Shell) updateProduct() error {
	id, err := readID(s.con, "Product id", false)
	if err != nil {
		return err
	}
	p, err := s.svc.FindProduct(id)
	if err != nil {
		return err
	}

	s.con.Println("Leave blank to keep the current value.")
	var in logi.ProductUpdate
	if in.Weight, err = readKg(s.con, "Weight (kg)", p.WeightKg); err != nil {
		return err
	}
	if in.Status, err = choose(s.con, "Delivery status", logi.DeliveryStatuses, logi.DeliveryStatus(p.Status)); err != nil {
		return err
	}
	if in.Category, err = choose(s.con, "Category", logi.ProductCategories, logi.ProductCategory(p.Category)); err != nil {
		return err
	}
	if in.ArrivedAt, err = readDate(s.con, "Arrival date ["+p.ArrivedAt.Format(logi.DateLayout)+"]", true); err != nil {
		return err
	}
	if in.ExpectedDelivery, err = readDate(s.con, "Expected delivery", true); err != nil {
		return err
	}
	driver, err := s.con.Prompt("Driver (employee person id, 0 for none) [keep]: ")
	if err != nil {
		return err
	}
	if driver != "" {
		n, err := strconv.ParseInt(driver, 10, 64)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: %q is not a valid id", logi.ErrInvalidInput, driver)
		}
		in.DriverID = &n
	}

	return s.rec.Record("product update", strconv.FormatInt(id, 10), func() error {
		if _, err := s.svc.UpdateProduct(id, in); err != nil {
			return err
		}
		s.con.Printf("Product %d updated.\n", id)
		return nil
	})
}

func (s *Shell) updateProductStatus() error {
	id, err := readID(s.con, "Product id", false)
	if err != nil {
		return err
	}
	p, err := s.svc.FindProduct(id)
	if err != nil {
		return err
	}
	status, err := choose(s.con, "Delivery status", logi.DeliveryStatuses, logi.DeliveryStatus(p.Status))
	if err != nil {
		return err
	}
	err = s.rec.Record("product status", fmt.Sprintf("%d %s", id, status), func() error {
		return s.svc.UpdateProductStatus(id, status)
	})
	if err != nil {
		return err
	}
	s.con.Printf("Product %d is now %s.\n", id, status)
	return nil
}

func (s *Shell) deleteProduct() error {
	id, err := readID(s.con, "Product id", false)
	if err != nil {
		return err
	}
	err = s.rec.Record("product delete", strconv.FormatInt(id, 10), func() error {
		return s.svc.RemoveProduct(id, func(p *sqlc.Product) bool {
			return s.confirm(fmt.Sprintf("Delete product %d (%s kg, %s)?", p.ID, logi.FormatKg(p.WeightKg), logi.Label(p.Status)))
		})
	})
	if err != nil {
		return err
	}
	s.con.Println("Product deleted.")
	return nil
}

func (s *Shell) trackingMenu() error {
	return s.loop("Tracking", "Back", []action{
		{"Track Product", s.trackProduct},
		{"List Tracking Records", s.listTrackingRecords},
	})
}

func (s *Shell) trackProduct() error {
	code, err := s.con.Required("Tracking code: ")
	if err != nil {
		return err
	}
	t, err := s.svc.TrackProduct(code)
	if err != nil {
		return err
	}
	printTrackingRecord(s.con, t)
	return nil
}

func (s *Shell) listTrackingRecords() error {
	records, err := s.svc.ListTrackingRecords()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		s.con.Println("No tracking records.")
		return nil
	}
	rows := make([][]string, len(records))
	for i, t := range records {
		rows[i] = []string{t.Code, t.RecipientName, t.City + "/" + t.State}
	}
	s.con.Table([]string{"CODE", "RECIPIENT", "DESTINATION"}, rows)
	return nil
}

func printProducts(c *console.Console, products []*sqlc.ListProductsRow) {
	if len(products) == 0 {
		c.Println("No products.")
		return
	}
	rows := make([][]string, len(products))
	for i, p := range products {
		expected := "-"
		if p.ExpectedDelivery.Valid {
			expected = p.ExpectedDelivery.Time.Format(logi.DateLayout)
		}
		rows[i] = []string{
			strconv.FormatInt(p.ID, 10),
			logi.FormatKg(p.WeightKg),
			logi.Label(p.Status),
			logi.Label(p.Category),
			p.ArrivedAt.Format(logi.DateLayout),
			expected,
			p.TrackingCode,
		}
	}
	c.Table([]string{"ID", "WEIGHT (KG)", "STATUS", "CATEGORY", "ARRIVED", "EXPECTED", "TRACKING"}, rows)
}

func printTrackingRecord(c *console.Console, t *sqlc.TrackingRecord) {
	c.Printf("Tracking code: %s\n", t.Code)
	c.Printf("Recipient:     %s\n", t.RecipientName)
	address := fmt.Sprintf("%s, %s - %s, %s/%s %s", t.Street, t.Number, t.District, t.City, t.State, t.PostalCode)
	if t.Complement.Valid {
		address = fmt.Sprintf("%s, %s %s - %s, %s/%s %s", t.Street, t.Number, t.Complement.String, t.District, t.City, t.State, t.PostalCode)
	}
	c.Printf("Address:       %s\n", address)
}
