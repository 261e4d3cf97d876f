package druginfo

// NotAvailable es el placeholder cuando el servicio externo no trae datos.
const NotAvailable = "N/A"

// Info es el resultado del lookup externo de un medicamento.
type Info struct {
	Usage       string
	Category    string
	GenericName string
}

func Unknown() Info {
	return Info{
		Usage:       NotAvailable,
		Category:    NotAvailable,
		GenericName: NotAvailable,
	}
}
