package registry

import (
	"bytes"
	"testing"

	"github.com/decentralwatch/registry/errors"
	"github.com/decentralwatch/registry/registrytest/assert"
)

func testProgram() Identity {
	var p Identity
	copy(p[:], bytes.Repeat([]byte{0x42}, KeySize))
	return p
}

func TestFindAddress(t *testing.T) {
	program := testProgram()
	owner := bytes.Repeat([]byte{7}, KeySize)

	addr, nonce, err := FindAddress(program, []byte("validator"), owner)
	assert.Nil(t, err)
	if nonce == 0 {
		t.Fatal("nonce zero is never searched")
	}
	if isOnCurve(addr[:]) {
		t.Fatal("found address is a curve point")
	}

	// The search is deterministic.
	again, againNonce, err := FindAddress(program, []byte("validator"), owner)
	assert.Nil(t, err)
	assert.Equal(t, addr, again)
	assert.Equal(t, nonce, againNonce)

	derived, err := DeriveAddress(program, nonce, []byte("validator"), owner)
	assert.Nil(t, err)
	assert.Equal(t, addr, derived)
	assert.Nil(t, VerifyAddress(program, addr, nonce, []byte("validator"), owner))

	// Every nonce above the found one derives a curve point.
	for n := 255; n > int(nonce); n-- {
		_, err := DeriveAddress(program, byte(n), []byte("validator"), owner)
		assert.IsErr(t, errors.ErrInput, err)
	}
}

func TestAddressesAreUnique(t *testing.T) {
	program := testProgram()
	seen := make(map[Address]string)
	add := func(name string, seeds ...[]byte) {
		addr, _, err := FindAddress(program, seeds...)
		assert.Nil(t, err)
		if other, ok := seen[addr]; ok {
			t.Fatalf("%s collides with %s", name, other)
		}
		seen[addr] = name
	}
	add("state", []byte("state"))
	for i := byte(0); i < 20; i++ {
		add(string([]byte{'v', i}), []byte("validator"), bytes.Repeat([]byte{i}, KeySize))
	}

	// Another program derives other addresses for the same seeds.
	other := testProgram()
	other[0] = 1
	a, _, err := FindAddress(program, []byte("state"))
	assert.Nil(t, err)
	b, _, err := FindAddress(other, []byte("state"))
	assert.Nil(t, err)
	if a == b {
		t.Fatal("programs share an address")
	}
}

func TestVerifyAddress(t *testing.T) {
	program := testProgram()
	addr, nonce, err := FindAddress(program, []byte("state"))
	assert.Nil(t, err)

	cases := map[string]struct {
		addr    Address
		nonce   byte
		seeds   [][]byte
		wantErr *errors.Error
	}{
		"valid": {
			addr:  addr,
			nonce: nonce,
			seeds: [][]byte{[]byte("state")},
		},
		"other seed": {
			addr:    addr,
			nonce:   nonce,
			seeds:   [][]byte{[]byte("stats")},
			wantErr: errors.ErrState,
		},
		"other nonce": {
			addr:    addr,
			nonce:   nonce - 1,
			seeds:   [][]byte{[]byte("state")},
			wantErr: errors.ErrState,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := VerifyAddress(program, tc.addr, tc.nonce, tc.seeds...)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestSeedLimits(t *testing.T) {
	program := testProgram()

	_, _, err := FindAddress(program, make([]byte, MaxSeedLen+1))
	assert.IsErr(t, errors.ErrInput, err)

	// The nonce takes the last seed slot.
	seeds := make([][]byte, MaxSeeds)
	_, err = DeriveAddress(program, 255, seeds...)
	assert.IsErr(t, errors.ErrInput, err)
	_, _, err = FindAddress(program, seeds...)
	assert.IsErr(t, errors.ErrInput, err)

	_, _, err = FindAddress(program, seeds[:MaxSeeds-1]...)
	assert.Nil(t, err)
}

// Addresses computed by the ledger runtime for its upgradeable loader.
func TestDeriveAddressKnownAnswers(t *testing.T) {
	program, err := ParseIdentity("BPFLoaderUpgradeab1e11111111111111111111111")
	assert.Nil(t, err)
	pubkey, err := ParseIdentity("SeedPubey1111111111111111111111111111111111")
	assert.Nil(t, err)

	cases := map[string]struct {
		nonce byte
		seeds [][]byte
		want  string
	}{
		"empty seed": {
			nonce: 1,
			seeds: [][]byte{{}},
			want:  "BwqrghZA2htAcqq8dzP1WDAhTXYTYWj7CHxF5j7TDBAe",
		},
		"key seed": {
			nonce: 1,
			seeds: [][]byte{pubkey[:]},
			want:  "976ymqVnfE32QFe6NfGDctSvVa36LWnvYxhU6G2232YL",
		},
		"utf8 seed and zero nonce": {
			nonce: 0,
			seeds: [][]byte{[]byte("☉")},
			want:  "13yWmRpaTR4r5nAktwLqMpRNr28tnVUZw26rTvPSSB19",
		},
		"two seeds": {
			nonce: 's',
			seeds: [][]byte{[]byte("Talking"), []byte("Squirrel")},
			want:  "2fnQrngrQT4SeLcdToJAD96phoEjNL2man2kfRLCASVk",
		},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			addr, err := DeriveAddress(program, tc.nonce, tc.seeds...)
			assert.Nil(t, err)
			assert.Equal(t, tc.want, addr.String())
		})
	}
}
