package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"solicitation-system/internal/dto"
	"solicitation-system/internal/services"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Autentica no backend e imprime o token de acesso",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				fmt.Fprint(a.out, "Senha: ")
				line, _ := bufio.NewReader(a.in).ReadString('\n')
				password = strings.TrimSpace(line)
			}

			auth := services.NewAuthService(a.auth, a.validate, a.logger)
			sess, err := auth.Login(cmd.Context(), dto.LoginDTO{Email: email, Password: password})
			if err != nil {
				return err
			}

			if a.asJSON {
				return writeJSON(a.out, map[string]any{
					"token":  sess.Token,
					"nivel":  int(sess.Role),
					"name":   sess.Name,
					"filial": sess.Filial,
				})
			}
			fmt.Fprintf(a.out, "Bem-vindo(a), %s (%s, %s).\n", sess.Name, sess.Role, sess.Filial)
			fmt.Fprintf(a.out, "export SOLICITACOES_TOKEN=%s\n", sess.Token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "E-mail do usuário (obrigatório)")
	cmd.Flags().StringVar(&password, "senha", "", "Senha (lida do terminal quando omitida)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
