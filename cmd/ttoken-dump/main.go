package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/ttoken-contract/rpc/ttoken"
)

// snapshot is a human-readable dump of the whole token contract storage at
// some block.
type snapshot struct {
	ID          string            `json:"id"`
	Label       string            `json:"label"`
	Block       uint32            `json:"block"`
	Contract    string            `json:"contract"`
	TotalSupply string            `json:"total_supply"`
	Accounts    []accountRecord   `json:"accounts"`
	Allowances  []allowanceRecord `json:"allowances"`
}

type accountRecord struct {
	// Base58-encoded public key of the account.
	Key     string `json:"key"`
	Balance string `json:"balance"`
	Nonce   string `json:"nonce"`
}

type allowanceRecord struct {
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

const (
	accountPrefix   = 'a'
	allowancePrefix = 'l'
	supplyKey       = "supply"

	publicKeyLen = 33
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	contractHash := flag.String("hash", "", "LE hex address of the token contract")
	chainLabel := flag.String("label", "", "Label of the blockchain environment (e.g. 'testnet')")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *contractHash == "":
		log.Fatal("missing token contract address")
	case *chainLabel == "":
		log.Fatal("missing blockchain label")
	}

	h, err := util.Uint160DecodeStringLE(strings.TrimPrefix(*contractHash, "0x"))
	if err != nil {
		log.Fatal(fmt.Errorf("decode contract address: %w", err))
	}

	const rootDir = "testdata"

	err = os.MkdirAll(rootDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create root dir: %w", err))
	}

	file, err := _dump(*neoRPCEndpoint, h, rootDir, *chainLabel)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("token contract state is successfully dumped to '%s'\n", file)
}

func _dump(neoBlockchainRPCEndpoint string, contract util.Uint160, rootDir, label string) (string, error) {
	b, err := dialChain(neoBlockchainRPCEndpoint)
	if err != nil {
		return "", fmt.Errorf("init remote blockchain: %w", err)
	}

	defer b.close()

	_, err = b.rpc.GetContractStateByHash(contract)
	if err != nil {
		return "", fmt.Errorf("get token contract by hash: %w", err)
	}

	supply, err := ttoken.NewReader(b.actor, contract).TotalSupply()
	if err != nil {
		return "", fmt.Errorf("read total supply of the token contract: %w", err)
	}

	s := snapshot{
		ID:          uuid.NewString(),
		Label:       label,
		Block:       b.currentBlock,
		Contract:    contract.StringLE(),
		TotalSupply: supply.String(),
	}

	err = b.forEachStorageItem(contract, func(key, value []byte) error {
		return s.takeItem(key, value)
	})
	if err != nil {
		return "", fmt.Errorf("iterate token contract storage: %w", err)
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	file := filepath.Join(rootDir, label+"-"+s.ID+".json")

	err = os.WriteFile(file, data, 0600)
	if err != nil {
		return "", fmt.Errorf("write snapshot file: %w", err)
	}

	return file, nil
}

// takeItem decodes single storage item of the token contract and records it
// in the snapshot. Unrecognized keys are an error: the contract never writes
// anything beyond accounts, allowances and the supply.
func (s *snapshot) takeItem(key, value []byte) error {
	switch {
	case string(key) == supplyKey:
		if stored := bigint.FromBytes(value).String(); stored != s.TotalSupply {
			return fmt.Errorf("stored total supply %s differs from the reported one %s", stored, s.TotalSupply)
		}
		return nil
	case len(key) == 1+publicKeyLen && key[0] == accountPrefix:
		item, err := stackitem.Deserialize(value)
		if err != nil {
			return fmt.Errorf("decode account state: %w", err)
		}

		fields, ok := item.Value().([]stackitem.Item)
		if !ok || len(fields) != 2 {
			return fmt.Errorf("unexpected account state layout")
		}

		balance, err := fields[0].TryInteger()
		if err != nil {
			return fmt.Errorf("decode account balance: %w", err)
		}

		nonce, err := fields[1].TryInteger()
		if err != nil {
			return fmt.Errorf("decode account nonce: %w", err)
		}

		s.Accounts = append(s.Accounts, accountRecord{
			Key:     base58.Encode(key[1:]),
			Balance: balance.String(),
			Nonce:   nonce.String(),
		})

		return nil
	case len(key) == 1+2*publicKeyLen && key[0] == allowancePrefix:
		s.Allowances = append(s.Allowances, allowanceRecord{
			Owner:   base58.Encode(key[1 : 1+publicKeyLen]),
			Spender: base58.Encode(key[1+publicKeyLen:]),
			Amount:  bigint.FromBytes(value).String(),
		})

		return nil
	default:
		return fmt.Errorf("unexpected storage key %x", key)
	}
}
