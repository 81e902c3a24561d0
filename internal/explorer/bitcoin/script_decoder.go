package bitcoin

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
	"github.com/goodnatureofminers/blockinsight7000-explorer/internal/explorer/model"
)

// DecodedScript is the classification of an output script.
type DecodedScript struct {
	Type model.ScriptType
	// Address is empty for scripts without a single standard address.
	Address string
	Asm     string
}

// ScriptDecoder classifies output scripts and extracts their addresses.
type ScriptDecoder struct {
	params *chaincfg.Params
}

// NewScriptDecoder initializes a decoder for extracting addresses using params of the provided network.
func NewScriptDecoder(network model.Network) (*ScriptDecoder, error) {
	params, err := ChainParams(network)
	if err != nil {
		return nil, err
	}
	return &ScriptDecoder{params: params}, nil
}

// Decode classifies a hex encoded output script. Only a malformed hex string is an
// error; non-standard scripts decode to OTHER without an address.
func (d *ScriptDecoder) Decode(scriptHex string) (DecodedScript, error) {
	script, err := hex.DecodeString(scriptHex)
	if err != nil {
		return DecodedScript{}, fmt.Errorf("decode script hex: %w", err)
	}

	// DisasmString returns what it could parse alongside the error.
	asm, _ := txscript.DisasmString(script)
	decoded := DecodedScript{
		Type: scriptType(txscript.GetScriptClass(script)),
		Asm:  asm,
	}
	if decoded.Type == model.ScriptOPReturn {
		return decoded, nil
	}

	_, addrs, _, err := txscript.ExtractPkScriptAddrs(script, d.params)
	if err == nil && len(addrs) == 1 {
		decoded.Address = addrs[0].EncodeAddress()
	}
	return decoded, nil
}

// Params returns the chain parameters the decoder was built for.
func (d *ScriptDecoder) Params() *chaincfg.Params {
	return d.params
}

func scriptType(class txscript.ScriptClass) model.ScriptType {
	switch class {
	case txscript.PubKeyHashTy:
		return model.ScriptP2PKH
	case txscript.ScriptHashTy:
		return model.ScriptP2SH
	case txscript.WitnessV0PubKeyHashTy:
		return model.ScriptP2WPKH
	case txscript.WitnessV0ScriptHashTy:
		return model.ScriptP2WSH
	case txscript.NullDataTy:
		return model.ScriptOPReturn
	default:
		return model.ScriptOther
	}
}

// ChainParams resolves btcd chain parameters for a network name.
func ChainParams(network model.Network) (*chaincfg.Params, error) {
	switch strings.ToLower(string(network)) {
	case "main", "mainnet", "bitcoin":
		return &chaincfg.MainNetParams, nil
	case "testnet", "testnet3":
		return &chaincfg.TestNet3Params, nil
	case "regtest":
		return &chaincfg.RegressionNetParams, nil
	case "signet":
		return &chaincfg.SigNetParams, nil
	default:
		return nil, fmt.Errorf("unsupported network %q", network)
	}
}
