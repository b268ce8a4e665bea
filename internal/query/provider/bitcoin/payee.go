package bitcoin

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/goodnatureofminers/blockinsight7000-query/internal/query/model"
)

// networkParams maps node network names to address encoding parameters.
var networkParams = map[string]*chaincfg.Params{
	"main":     &chaincfg.MainNetParams,
	"mainnet":  &chaincfg.MainNetParams,
	"bitcoin":  &chaincfg.MainNetParams,
	"testnet":  &chaincfg.TestNet3Params,
	"testnet3": &chaincfg.TestNet3Params,
	"regtest":  &chaincfg.RegressionNetParams,
	"signet":   &chaincfg.SigNetParams,
}

func paramsFor(network string) (*chaincfg.Params, error) {
	params, ok := networkParams[strings.ToLower(network)]
	if !ok {
		return nil, fmt.Errorf("unsupported network %q", network)
	}
	return params, nil
}

// payeeDecoder resolves the address an RPC output pays.
type payeeDecoder struct {
	params *chaincfg.Params
}

func newPayeeDecoder(network string) (*payeeDecoder, error) {
	params, err := paramsFor(network)
	if err != nil {
		return nil, err
	}
	return &payeeDecoder{params: params}, nil
}

// payee returns the single address vout pays, or "" when it has none.
// Addresses reported by the node win; older nodes omit them for some script
// types, so the script itself is decoded as a fallback.
func (d *payeeDecoder) payee(vout btcjson.Vout) (string, error) {
	spk := vout.ScriptPubKey
	switch {
	case spk.Address != "":
		return spk.Address, nil
	case len(spk.Addresses) > 0:
		return model.Payee(spk.Addresses), nil
	case spk.Hex == "":
		return "", nil
	}

	script, err := hex.DecodeString(spk.Hex)
	if err != nil {
		return "", fmt.Errorf("script hex: %w", err)
	}
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err != nil {
		return "", fmt.Errorf("extract %s script addresses: %w", class, err)
	}
	encoded := make([]string, len(addrs))
	for i, addr := range addrs {
		encoded[i] = addr.EncodeAddress()
	}
	return model.Payee(encoded), nil
}
