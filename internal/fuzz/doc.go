// Package fuzztests houses Go fuzz harnesses for enumtable: ordinal
// conversions, order-independent table construction, name parsing and the
// analysis and rendering done by enumtablegen.
//
// Назначение: проверять инварианты на произвольных входах и ловить паники.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: enumtable, internal/derive, internal/testkit, internal/testenum.

package fuzztests
