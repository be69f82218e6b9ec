package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/LabOps-api/pkg/barcode"
)

var barcodeMaxLength int

// barcodeCmd no necesita configuración ni base de datos.
var barcodeCmd = &cobra.Command{
	Use:               "barcode",
	Short:             "Codifica y decodifica códigos de lote y de pasos",
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
}

var barcodeEncodeCmd = &cobra.Command{
	Use:   "encode batch <lote> | encode start|stop <paso> <lote>",
	Short: "Genera el texto del código de barras",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec := barcode.New(barcodeMaxLength)
		var (
			code string
			err  error
		)
		switch kind := strings.ToLower(args[0]); {
		case kind == "batch" && len(args) == 2:
			code, err = codec.EncodeBatch(args[1])
		case kind == "start" && len(args) == 3:
			code, err = codec.EncodeStart(args[1], args[2])
		case kind == "stop" && len(args) == 3:
			code, err = codec.EncodeStop(args[1], args[2])
		default:
			return fmt.Errorf("uso: %s", cmd.Use)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), code)
		return nil
	},
}

var barcodeDecodeCmd = &cobra.Command{
	Use:   "decode <código>",
	Short: "Interpreta un código escaneado",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := barcode.New(barcodeMaxLength).Decode(args[0])
		if s.Action == barcode.ActionUnknown {
			return fmt.Errorf("código no reconocido: %w", s.Err)
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(s)
	},
}

func init() {
	barcodeCmd.PersistentFlags().IntVar(&barcodeMaxLength, "max-length", barcode.MaxLength, "longitud máxima del código")
	barcodeCmd.AddCommand(barcodeEncodeCmd, barcodeDecodeCmd)
}
