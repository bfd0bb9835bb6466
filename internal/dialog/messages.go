package dialog

// User-facing texts.
const (
	msgNoSession  = "Por favor, escribe 'hola' para comenzar."
	msgRetryLater = "⚠️ Tuvimos un problema consultando el catálogo. Inténtalo de nuevo más tarde."
	msgNoBack     = "No es posible regresar desde este paso."
	msgBackPrefix = "↩️ Regresamos al paso anterior.\n\n"
	msgCancelled  = "Cotización cancelada. Escribe 'hola' cuando quieras cotizar de nuevo."
	msgIncomplete = "Faltan datos para completar la cotización. Escribe 'r' para regresar y completarlos, o 'no' para cancelar."

	msgProductNameMissing = "No tenemos el nombre del producto."

	msgAskName = "¡Hola! Bienvenido a nuestro servicio de cotizaciones de impresión. 🖨️\n¿Cuál es tu nombre?"
	msgMenu    = "%s, elige una opción:\n\n1. Nueva cotización\n2. Administrar cargos adicionales"

	msgProducts        = "Elige el producto a cotizar:\n\n%s\n0. Agregar un producto nuevo"
	msgNewProduct      = "Escribe el nombre del nuevo producto."
	msgNewProductPrice = "¿Cuál es el precio base de %s? (ejemplo: 150.00)"
	msgDimensions      = "Elige el tamaño:\n\n%s\n0. Agregar un tamaño nuevo"
	msgNewDimension    = "Escribe el tamaño con el formato ancho x alto (ejemplo: 20x30)."
	msgMaterials       = "Elige el material:\n\n%s"
	msgNoMaterials     = "No hay materiales registrados. Escribe 'r' para regresar o 'hola' para empezar de nuevo."
	msgQuantity        = "¿Cuántas piezas necesitas?"
	msgDigital         = "¿La impresión es digital? (sí/no)"
	msgChargeAmount    = "Cargo adicional %d de %d: %s%s\n¿Cuál es el importe? (0 si no aplica)"
	msgExtraCost       = "¿Deseas agregar un costo extra? (sí/no)"
	msgExtraCostMore   = "¿Deseas agregar otro costo extra? (sí/no)"
	msgExtraAmount     = "¿Cuál es el importe del costo extra?"
	msgExtraDesc       = "Describe el costo extra."
	msgTurnaround      = "¿En cuántos días hábiles se entrega el trabajo?"
	msgTiroRetiro      = "¿El trabajo lleva tiro y retiro? (sí/no)"
	msgTiroRetiroCost  = "¿Cuál es el costo del tiro y retiro?"
	msgMargin          = "¿Deseas usar un margen distinto al 50%? (sí/no)"
	msgMarginValue     = "¿Qué porcentaje de margen deseas aplicar? (ejemplo: 35)"
	msgConfirm         = "Resumen de tu cotización:\n\n%s\n\n¿Confirmas? (Responde 'sí' o 'no')."

	msgAdminCharges  = "Cargos adicionales:\n\n1. Ver cargos\n2. Agregar cargo\n3. Eliminar cargo"
	msgChargeList    = "Cargos registrados:\n\n%s"
	msgNoCharges     = "No hay cargos adicionales registrados."
	msgAddCharge     = "Escribe el nombre del nuevo cargo."
	msgAddChargeDesc = "Escribe una descripción para %s."
	msgChargeAdded   = "✅ Cargo %s agregado."
	msgDeleteCharge  = "¿Qué cargo deseas eliminar?\n\n%s"
	msgChargeDeleted = "🗑️ Cargo %s eliminado."
)

// Re-prompt reasons.
const (
	errEmptyText        = "La respuesta no puede estar vacía."
	errMenuOption       = "Opción no válida. Por favor, elige 1 o 2."
	errAdminOption      = "Opción no válida. Por favor, elige 1, 2 o 3."
	errListOption       = "Opción no válida. Elige un número de la lista o 0 para agregar uno nuevo."
	errMaterialOption   = "Opción no válida. Elige un número de la lista."
	errDimensionFormat  = "Formato incorrecto. Por favor, ingresa el ancho y alto en formato '20x30'."
	errQuantityNumber   = "Por favor, ingresa un número válido."
	errQuantityPositive = "La cantidad debe ser mayor que cero."
	errAmount           = "Importe no válido. Ingresa un número positivo (ejemplo: 1,500.50)."
	errPercent          = "Porcentaje no válido. Ingresa un número positivo (ejemplo: 35 o 35%)."
	errDays             = "Ingresa un número de días mayor que cero."
	errYesNo            = "Por favor, responde 'sí' o 'no'."
	errChargeOption     = "Opción no válida. Elige el número del cargo a eliminar."
	errChargeGone       = "Ese cargo ya no existe. Elige otro número de la lista."
)
