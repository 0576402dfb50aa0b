package dispatch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormatLongDate(t *testing.T) {
	require.Equal(t, "jueves, 27 de mar", FormatLongDate(date(2025, time.March, 27)))
	require.Equal(t, "lunes, 1 de sep", FormatLongDate(date(2025, time.September, 1)))
	require.Equal(t, "miércoles, 24 de dic", FormatLongDate(date(2025, time.December, 24)))
}

func TestFormatFullDate(t *testing.T) {
	require.Equal(t, "jueves, 27 de marzo", FormatFullDate(date(2025, time.March, 27)))
	require.Equal(t, "sábado, 15 de febrero", FormatFullDate(date(2025, time.February, 15)))
}

func TestFormatDispatchDate(t *testing.T) {
	got := FormatDispatchDate(date(2025, time.March, 27))
	require.Equal(t, "Despacho más próximo: Jueves, 27 de mar", got)

	// Capitalization must handle accented weekday initials
	got = FormatDispatchDate(date(2025, time.March, 22))
	require.Equal(t, "Despacho más próximo: Sábado, 22 de mar", got)
}

func TestTimeInfo(t *testing.T) {
	require.Equal(t, "9:00 - 18:00 hrs", TimeInfo("Policarbonato Alveolar"))
	require.Equal(t, "9:00 - 17:00 hrs", TimeInfo("Pintura látex"))
}

func TestMessage(t *testing.T) {
	msg, err := Message("Policarbonato Alveolar", at(2025, time.March, 18, 10))
	require.NoError(t, err)
	require.Equal(t, "Próximo: Jueves, 20 de mar, 9:00 - 18:00 hrs", msg)
}

func TestDescription(t *testing.T) {
	require.Equal(t, "Solo jueves de 9:00 a 18:00 hrs", Description("Policarbonato Compacto"))
	require.Equal(t, "Lunes a viernes de 9:00 a 18:00 hrs", Description("Accesorios"))
}
