package i18n

var esECCatalog = NewCatalog("es-EC", map[Code]string{
	// Meeting errors
	CodeMeetingSprintIDEmpty:  "Se requiere el ID del sprint para una reunión diaria",
	CodeMeetingDateMissing:    "Se requiere la fecha de la reunión",
	CodeMeetingAlreadyStarted: "La reunión ya fue iniciada",
	CodeMeetingNotStarted:     "La reunión aún no ha sido iniciada",
	CodeMeetingFinished:       "La reunión ya fue finalizada",
	CodeMeetingEndBeforeStart: "La hora de fin {{.EndTime}} es anterior a la hora de inicio {{.StartTime}}",

	// Participant response errors
	CodeResponsePersonIDEmpty:     "Se requiere el ID de la persona para una respuesta de participante",
	CodeResponseUnknownField:      "Campo de respuesta desconocido {{.Field}}",
	CodeResponseParticipantAbsent: "El participante está marcado como ausente",
	CodeResponseNotFound:          "No existe una respuesta para este participante",

	// Impediment errors
	CodeImpedimentDescriptionEmpty:  "La descripción del impedimento no puede estar vacía",
	CodeImpedimentInvalidPriority:   "Prioridad de impedimento inválida {{.Priority}}",
	CodeImpedimentResolutionEmpty:   "Se requiere el texto de resolución para resolver un impedimento",
	CodeImpedimentInvalidTransition: "No se puede cambiar el impedimento de {{.From}} a {{.To}}",
	CodeImpedimentResolved:          "El impedimento ya fue resuelto",
	CodeImpedimentReporterEmpty:     "Se requiere el ID del reportante para un impedimento",

	// Storage errors
	CodeNotFound: "El registro solicitado no fue encontrado",
	CodeConflict: "El registro fue modificado concurrentemente; recargue e intente de nuevo",
})
