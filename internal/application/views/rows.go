package views

import (
	"strconv"

	"github.com/jhoicas/inventario-console/internal/application/dto"
	"github.com/jhoicas/inventario-console/internal/domain/entity"
	"github.com/jhoicas/inventario-console/pkg/money"
)

// ProductRows tabla del catálogo para exportar.
func ProductRows(products []entity.Product, mf *money.Formatter) dto.Table {
	t := dto.Table{
		Title:   "Produtos",
		Columns: []string{"Nome", "SKU", "Categoria", "Preço", "Estoque", "Status"},
	}
	for _, p := range products {
		t.Rows = append(t.Rows, []string{
			p.Name, p.SKU, p.Category, mf.Format(p.Price), strconv.Itoa(p.Stock), p.Status,
		})
	}
	return t
}

// BestSellerRows tabla de los más vendidos, en el orden del servidor.
func BestSellerRows(list []entity.BestSeller, mf *money.Formatter) dto.Table {
	t := dto.Table{
		Title:   "Mais vendidos",
		Columns: []string{"#", "Nome", "SKU", "Quantidade", "Receita"},
	}
	for i, b := range list {
		t.Rows = append(t.Rows, []string{
			strconv.Itoa(i + 1), b.Name, b.SKU, strconv.Itoa(b.TotalQuantity), mf.Format(b.TotalRevenue),
		})
	}
	return t
}

// SaleRows tabla del historial de ventas. Un producto eliminado se muestra por su id.
func SaleRows(sales []entity.Sale, mf *money.Formatter) dto.Table {
	t := dto.Table{
		Title:   "Vendas",
		Columns: []string{"Data", "Produto", "Quantidade", "Total"},
	}
	for _, s := range sales {
		name := s.Product.Name
		if name == "" {
			name = s.Product.ID
		}
		t.Rows = append(t.Rows, []string{
			s.SaleDate.Format("02/01/2006 15:04"), name, strconv.Itoa(s.Quantity), mf.Format(s.TotalValue),
		})
	}
	return t
}
