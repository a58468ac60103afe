package domain

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewOrder(t *testing.T) {
	l := NewLedger()
	alice := mustCustomer(t, l, "Alice")
	espresso := mustCoffee(t, l, "Espresso")
	foreign := mustCoffee(t, NewLedger(), "Foreign")

	testCases := []struct {
		name      string
		customer  *Customer
		coffee    *Coffee
		price     float64
		wantErr   error
		wantField string
	}{
		{name: "valid", customer: alice, coffee: espresso, price: 4.5},
		{name: "price at lower bound", customer: alice, coffee: espresso, price: 1.0},
		{name: "price at upper bound", customer: alice, coffee: espresso, price: 10.0},
		{name: "missing customer", coffee: espresso, price: 4.5, wantErr: ErrType, wantField: "customer"},
		{name: "missing coffee", customer: alice, price: 4.5, wantErr: ErrType, wantField: "coffee"},
		{name: "customer checked first", price: 4.5, wantErr: ErrType, wantField: "customer"},
		{name: "price too low", customer: alice, coffee: espresso, price: 0.5, wantErr: ErrRange, wantField: "price"},
		{name: "price too high", customer: alice, coffee: espresso, price: 15.0, wantErr: ErrRange, wantField: "price"},
		{name: "price just above max", customer: alice, coffee: espresso, price: 10.01, wantErr: ErrRange, wantField: "price"},
		{name: "infinite price", customer: alice, coffee: espresso, price: math.Inf(1), wantErr: ErrRange, wantField: "price"},
		{name: "NaN price", customer: alice, coffee: espresso, price: math.NaN(), wantErr: ErrType, wantField: "price"},
		{name: "coffee from another ledger", customer: alice, coffee: foreign, price: 4.5, wantErr: ErrRange, wantField: "coffee"},
		{name: "zero-value customer", customer: &Customer{}, coffee: espresso, price: 4.5, wantErr: ErrType, wantField: "customer"},
		{name: "zero-value coffee", customer: alice, coffee: &Coffee{}, price: 4.5, wantErr: ErrType, wantField: "coffee"},
		{name: "zero-value customer and coffee", customer: &Customer{}, coffee: &Coffee{}, price: 2.0, wantErr: ErrType, wantField: "customer"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			before := l.Len()
			o, err := NewOrder(tc.customer, tc.coffee, tc.price)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				require.Nil(t, o)
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				require.Equal(t, tc.wantField, ve.Field)
				require.Equal(t, before, l.Len())
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.price, o.Price())
			require.Equal(t, before+1, l.Len())
		})
	}
}

func TestOrder_Setters(t *testing.T) {
	l := NewLedger()
	alice := mustCustomer(t, l, "Alice")
	bob := mustCustomer(t, l, "Bob")
	espresso := mustCoffee(t, l, "Espresso")
	latte := mustCoffee(t, l, "Latte")
	o := mustOrder(t, alice, espresso, 2.5)

	require.NoError(t, o.SetCustomer(bob))
	require.NoError(t, o.SetCoffee(latte))
	require.NoError(t, o.SetPrice(7.0))

	c, k, p := o.Fields()
	require.Same(t, bob, c)
	require.Same(t, latte, k)
	require.Equal(t, 7.0, p)

	require.ErrorIs(t, o.SetCustomer(nil), ErrType)
	require.ErrorIs(t, o.SetCoffee(nil), ErrType)
	require.ErrorIs(t, o.SetPrice(11), ErrRange)
	require.ErrorIs(t, o.SetPrice(math.NaN()), ErrType)
	require.ErrorIs(t, o.SetCustomer(mustCustomer(t, NewLedger(), "Zed")), ErrRange)
	require.ErrorIs(t, o.SetCustomer(&Customer{}), ErrType)
	require.ErrorIs(t, o.SetCoffee(&Coffee{}), ErrType)
	require.ErrorIs(t, o.Update(&Customer{}, latte, 3.0), ErrType)
	require.ErrorIs(t, o.Update(bob, &Coffee{}, 3.0), ErrType)

	c, k, p = o.Fields()
	require.Same(t, bob, c)
	require.Same(t, latte, k)
	require.Equal(t, 7.0, p)

	require.Equal(t, 1, l.Len(), "reassignment never re-appends")
	require.Empty(t, alice.Orders())
	require.Equal(t, []*Order{o}, bob.Orders())
	require.Empty(t, espresso.Orders())
	require.Equal(t, []*Order{o}, latte.Orders())
}

func TestOrder_Update(t *testing.T) {
	l := NewLedger()
	alice := mustCustomer(t, l, "Alice")
	bob := mustCustomer(t, l, "Bob")
	espresso := mustCoffee(t, l, "Espresso")
	latte := mustCoffee(t, l, "Latte")
	o := mustOrder(t, alice, espresso, 2.5)

	err := o.Update(bob, latte, 20)
	require.ErrorIs(t, err, ErrRange)

	c, k, p := o.Fields()
	require.Same(t, alice, c, "a rejected update must not assign any field")
	require.Same(t, espresso, k)
	require.Equal(t, 2.5, p)

	require.NoError(t, o.Update(bob, latte, 3.5))
	c, k, p = o.Fields()
	require.Same(t, bob, c)
	require.Same(t, latte, k)
	require.Equal(t, 3.5, p)
}

func TestOrder_ZeroValue(t *testing.T) {
	l := NewLedger()
	alice := mustCustomer(t, l, "Alice")
	espresso := mustCoffee(t, l, "Espresso")
	o := &Order{}

	require.ErrorIs(t, o.SetCustomer(alice), ErrType)
	require.ErrorIs(t, o.SetCoffee(espresso), ErrType)
	require.ErrorIs(t, o.SetPrice(3.0), ErrType)
	require.ErrorIs(t, o.Apply(alice, nil, nil), ErrType)

	c, k, p := o.Fields()
	require.Nil(t, c)
	require.Nil(t, k)
	require.Zero(t, p)
}

func TestOrder_Apply(t *testing.T) {
	l := NewLedger()
	alice := mustCustomer(t, l, "Alice")
	bob := mustCustomer(t, l, "Bob")
	espresso := mustCoffee(t, l, "Espresso")
	latte := mustCoffee(t, l, "Latte")
	price := func(p float64) *float64 { return &p }

	testCases := []struct {
		name      string
		customer  *Customer
		coffee    *Coffee
		price     *float64
		wantErr   error
		wantField string
		wantCust  *Customer
		wantCof   *Coffee
		wantPrice float64
	}{
		{name: "empty patch keeps everything", wantCust: alice, wantCof: espresso, wantPrice: 2.5},
		{name: "price only", price: price(6), wantCust: alice, wantCof: espresso, wantPrice: 6},
		{name: "customer only", customer: bob, wantCust: bob, wantCof: espresso, wantPrice: 2.5},
		{name: "all fields", customer: bob, coffee: latte, price: price(9), wantCust: bob, wantCof: latte, wantPrice: 9},
		{name: "bad price rejects the whole patch", customer: bob, price: price(20), wantErr: ErrRange, wantField: "price"},
		{name: "foreign coffee", coffee: mustCoffee(t, NewLedger(), "Mocha"), wantErr: ErrRange, wantField: "coffee"},
		{name: "zero-value customer", customer: &Customer{}, wantErr: ErrType, wantField: "customer"},
		{name: "NaN price", price: price(math.NaN()), wantErr: ErrType, wantField: "price"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := mustOrder(t, alice, espresso, 2.5)

			err := o.Apply(tc.customer, tc.coffee, tc.price)

			c, k, p := o.Fields()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				require.Equal(t, tc.wantField, ve.Field)
				require.Same(t, alice, c)
				require.Same(t, espresso, k)
				require.Equal(t, 2.5, p)
				return
			}
			require.NoError(t, err)
			require.Same(t, tc.wantCust, c)
			require.Same(t, tc.wantCof, k)
			require.Equal(t, tc.wantPrice, p)
		})
	}
}

func TestOrder_ApplyConcurrentPatchesKeepBothFields(t *testing.T) {
	l := NewLedger()
	alice := mustCustomer(t, l, "Alice")
	bob := mustCustomer(t, l, "Bob")
	espresso := mustCoffee(t, l, "Espresso")

	for i := 0; i < 200; i++ {
		o := mustOrder(t, alice, espresso, 2.5)
		price := 8.0

		var (
			wg         sync.WaitGroup
			errA, errB error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			errA = o.Apply(bob, nil, nil)
		}()
		go func() {
			defer wg.Done()
			errB = o.Apply(nil, nil, &price)
		}()
		wg.Wait()
		require.NoError(t, errA)
		require.NoError(t, errB)

		c, _, p := o.Fields()
		require.Same(t, bob, c)
		require.Equal(t, 8.0, p)
	}
}
