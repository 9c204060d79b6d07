package products

import (
	"fmt"

	"warehouse/models"
)

// ModalKind tags which dialog, if any, is open.
type ModalKind int

const (
	ModalNone ModalKind = iota
	ModalAdd
	ModalEdit
	ModalDetails
	ModalConfirmDelete
)

func (k ModalKind) String() string {
	switch k {
	case ModalAdd:
		return "add"
	case ModalEdit:
		return "edit"
	case ModalDetails:
		return "details"
	case ModalConfirmDelete:
		return "delete"
	default:
		return "none"
	}
}

// Modal is the single open dialog. Holding one value instead of one flag per
// dialog means at most one can ever be open.
type Modal struct {
	Kind   ModalKind
	Target models.Product
	Form   ProductForm
}

func NoModal() Modal  { return Modal{Kind: ModalNone} }
func AddModal() Modal { return Modal{Kind: ModalAdd} }
func EditModal(p models.Product) Modal {
	return Modal{Kind: ModalEdit, Target: p, Form: ProductFormFrom(p)}
}
func DetailsModal(p models.Product) Modal       { return Modal{Kind: ModalDetails, Target: p} }
func ConfirmDeleteModal(p models.Product) Modal { return Modal{Kind: ModalConfirmDelete, Target: p} }

// WithForm keeps rejected input on an add or edit dialog.
func (m Modal) WithForm(f ProductForm) Modal {
	m.Form = f
	return m
}

// Open reports whether any dialog is shown.
func (m Modal) Open() bool {
	return m.Kind != ModalNone
}

// ParseTargetModal builds the dialog for a per-product action name
// ("edit", "details", "delete").
func ParseTargetModal(kind string, p models.Product) (Modal, error) {
	switch kind {
	case "edit":
		return EditModal(p), nil
	case "details":
		return DetailsModal(p), nil
	case "delete":
		return ConfirmDeleteModal(p), nil
	default:
		return NoModal(), fmt.Errorf("unknown modal %q", kind)
	}
}

// Title is the dialog heading.
func (m Modal) Title() string {
	switch m.Kind {
	case ModalAdd:
		return "Add New Product"
	case ModalEdit:
		return "Edit Product"
	case ModalDetails:
		return "Product Details"
	case ModalConfirmDelete:
		return "Confirm Delete " + m.Target.NameOrEmpty()
	default:
		return ""
	}
}

// DeleteWarning is the in-stock warning shown before deleting p, or "" when
// p has no units in stock.
func DeleteWarning(p models.Product) string {
	if p.Quantity == nil || *p.Quantity <= 0 {
		return ""
	}
	return fmt.Sprintf("WARNING: This product has %d units in stock!", *p.Quantity)
}
