package bank

import (
	"sort"

	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

// Factory builds the bill info of one payment under one bank's rules,
// validating the account options on the way.
type Factory func(p domain.Payment, acc domain.BankAccount) (BillInfo, error)

type registration struct {
	number      int
	description string
	recordSize  int
	factory     Factory
}

// The registry is populated once at package initialization and
// read-only afterwards, so concurrent emission needs no locking.
var registry = map[int]registration{}

func register(number int, description string, recordSize int, f Factory) {
	registry[number] = registration{
		number:      number,
		description: description,
		recordSize:  recordSize,
		factory:     f,
	}
}

// The supported banks are enumerated here explicitly instead of
// relying on import side effects spread across files.
func init() {
	register(1, "Banco do Brasil", 240, newBancoDoBrasil)
	register(33, "Santander", 240, newSantander)
	register(41, "Banrisul", 240, newBanrisul)
	register(104, "Caixa Econômica Federal", 240, newCaixa)
	register(237, "Bradesco", 240, newBradesco)
	register(341, "Itaú", 400, newItau)
	register(356, "Banco Real", 240, newReal)
}

// Lookup returns the factory registered for a bank number.
func Lookup(number int) (Factory, error) {
	reg, ok := registry[number]
	if !ok {
		return nil, &domain.ErrUnknownBank{Number: number}
	}
	return reg.factory, nil
}

// New builds the bill info for a payment using the account's bank.
func New(p domain.Payment, acc domain.BankAccount) (BillInfo, error) {
	factory, err := Lookup(acc.BankNumber)
	if err != nil {
		return nil, err
	}
	return factory(p, acc)
}

// Registered lists the registry contents, ordered by bank number.
func Registered() []domain.RegisteredBank {
	out := make([]domain.RegisteredBank, 0, len(registry))
	for _, reg := range registry {
		out = append(out, domain.RegisteredBank{
			Number:      reg.number,
			Description: reg.description,
			CodeDV:      BankCodeDV(reg.number),
			RecordSize:  reg.recordSize,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Number < out[j].Number })
	return out
}
